package engine

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/streamcast/recommendation-service/internal/domain"
)

func fixedClock() time.Time { return testNow }

func testCatalog() []domain.ContentItem {
	return []domain.ContentItem{
		{ID: 1, Title: "Quiet Rivers", CategoryID: 1, Genre: strPtr("drama"), Type: domain.ContentTypeMovie, Popularity: fltPtr(60)},
		{ID: 2, Title: "Glass Harbor", CategoryID: 1, Genre: strPtr("drama"), Type: domain.ContentTypeMovie, Popularity: fltPtr(40)},
		{ID: 3, Title: "Laugh Track", CategoryID: 2, Genre: strPtr("comedy"), Type: domain.ContentTypeSeries, Popularity: fltPtr(90)},
		{ID: 4, Title: "Night Circuit", CategoryID: 3, Genre: strPtr("thriller"), Type: domain.ContentTypeMovie},
		{ID: 5, Title: "Short Fuse", CategoryID: 2, Genre: strPtr("comedy"), Type: domain.ContentTypeShortFilm},
	}
}

func TestRecommend_NeverReturnsWatchedContent(t *testing.T) {
	e := New(DefaultWeights(), WithClock(fixedClock))

	catalog := testCatalog()
	history := []domain.WatchHistoryEntry{
		{ContentID: 1, Completed: true, WatchedAt: testNow},
		{ContentID: 3, WatchTimePct: 50, WatchedAt: testNow},
	}

	recs, err := e.Recommend(catalog, history, nil, nil, 10)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	for _, rec := range recs {
		if rec.Item.ID == 1 || rec.Item.ID == 3 {
			t.Errorf("watched content %d was recommended", rec.Item.ID)
		}
	}
	if len(recs) != 3 {
		t.Errorf("expected 3 unwatched candidates, got %d", len(recs))
	}
}

func TestRecommend_RespectsExclusionSet(t *testing.T) {
	e := New(DefaultWeights(), WithClock(fixedClock))

	history := []domain.WatchHistoryEntry{{ContentID: 1, Completed: true, WatchedAt: testNow}}
	exclude := map[int64]struct{}{4: {}}

	recs, err := e.Recommend(testCatalog(), history, nil, exclude, 10)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	for _, rec := range recs {
		if rec.Item.ID == 4 {
			t.Error("excluded content 4 was recommended")
		}
	}
}

func TestRecommend_LimitRespected(t *testing.T) {
	e := New(DefaultWeights(), WithClock(fixedClock))

	history := []domain.WatchHistoryEntry{{ContentID: 1, Completed: true, WatchedAt: testNow}}

	tests := []struct {
		limit int
		want  int
	}{
		{0, 0},
		{2, 2},
		{4, 4},
		{100, 4}, // only 4 eligible candidates
	}

	for _, tt := range tests {
		recs, err := e.Recommend(testCatalog(), history, nil, nil, tt.limit)
		if err != nil {
			t.Fatalf("Recommend(limit=%d) failed: %v", tt.limit, err)
		}
		if len(recs) != tt.want {
			t.Errorf("Recommend(limit=%d) returned %d items, want %d", tt.limit, len(recs), tt.want)
		}
	}
}

func TestRecommend_NegativeLimitRejected(t *testing.T) {
	e := New(DefaultWeights())

	if _, err := e.Recommend(testCatalog(), nil, nil, nil, -1); !errors.Is(err, domain.ErrInvalidLimit) {
		t.Errorf("error = %v, want ErrInvalidLimit", err)
	}
	if _, err := e.SimilarTo(testCatalog()[0], testCatalog(), -1); !errors.Is(err, domain.ErrInvalidLimit) {
		t.Errorf("SimilarTo error = %v, want ErrInvalidLimit", err)
	}
	if _, err := e.Trending(testCatalog(), nil, -1); !errors.Is(err, domain.ErrInvalidLimit) {
		t.Errorf("Trending error = %v, want ErrInvalidLimit", err)
	}
}

func TestRecommend_SharedAttributesRankFirst(t *testing.T) {
	e := New(DefaultWeights(), WithClock(fixedClock))

	catalog := []domain.ContentItem{
		{ID: 1, CategoryID: 1, Genre: strPtr("drama")},
		{ID: 2, CategoryID: 1, Genre: strPtr("drama")},
		{ID: 3, CategoryID: 2, Genre: strPtr("comedy")},
	}
	history := []domain.WatchHistoryEntry{{ContentID: 1, Completed: true, WatchedAt: testNow}}

	recs, err := e.Recommend(catalog, history, domain.RatingMap{}, nil, 2)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	// Item 2 shares genre and category with the completed watch; item 3
	// shares nothing.
	if recs[0].Item.ID != 2 {
		t.Errorf("top recommendation = %d, want 2", recs[0].Item.ID)
	}
	if recs[1].Item.ID != 3 {
		t.Errorf("second recommendation = %d, want 3", recs[1].Item.ID)
	}
	if recs[0].Score <= recs[1].Score {
		t.Errorf("scores not descending: %f <= %f", recs[0].Score, recs[1].Score)
	}
}

func TestRecommend_DeterministicUnderFixedClock(t *testing.T) {
	e := New(DefaultWeights(), WithClock(fixedClock))

	catalog := testCatalog()
	history := []domain.WatchHistoryEntry{
		{ContentID: 1, Completed: true, WatchedAt: testNow.AddDate(0, 0, -3)},
		{ContentID: 5, WatchTimePct: 70, WatchedAt: testNow.AddDate(0, 0, -40)},
	}
	ratings := domain.RatingMap{3: 5, 1: 4, 4: 2}

	first, err := e.Recommend(catalog, history, ratings, nil, 10)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	for i := 0; i < 20; i++ {
		again, err := e.Recommend(catalog, history, ratings, nil, 10)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d, want %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j].Item.ID != first[j].Item.ID || again[j].Score != first[j].Score {
				t.Fatalf("run %d: position %d differs: got (%d, %f), want (%d, %f)",
					i, j, again[j].Item.ID, again[j].Score, first[j].Item.ID, first[j].Score)
			}
		}
	}
}

func TestRecommend_StableTieBreakKeepsCatalogOrder(t *testing.T) {
	// Zero weights force every candidate to score 0, so the output must
	// be exactly catalog order.
	e := New(Weights{}, WithClock(fixedClock))

	catalog := testCatalog()
	history := []domain.WatchHistoryEntry{{ContentID: 1, Completed: true, WatchedAt: testNow}}

	recs, err := e.Recommend(catalog, history, nil, nil, 10)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	want := []int64{2, 3, 4, 5}
	if len(recs) != len(want) {
		t.Fatalf("got %d recommendations, want %d", len(recs), len(want))
	}
	for i, id := range want {
		if recs[i].Item.ID != id {
			t.Errorf("position %d = %d, want %d (catalog order on ties)", i, recs[i].Item.ID, id)
		}
	}
}

func TestRecommend_EmptyHistoryFallbackIsSeeded(t *testing.T) {
	catalog := testCatalog()
	exclude := map[int64]struct{}{2: {}}

	run := func(seed int64) []int64 {
		e := New(DefaultWeights(), WithRand(rand.New(rand.NewSource(seed))))
		recs, err := e.Recommend(catalog, nil, nil, exclude, 10)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		ids := make([]int64, len(recs))
		for i, rec := range recs {
			ids[i] = rec.Item.ID
		}
		return ids
	}

	first := run(7)
	second := run(7)

	if len(first) != 4 {
		t.Fatalf("fallback returned %d items, want 4 (5 minus excluded)", len(first))
	}
	for i := range first {
		if first[i] == 2 {
			t.Error("excluded content 2 present in fallback output")
		}
		if first[i] != second[i] {
			t.Errorf("same seed produced different order: %v vs %v", first, second)
			break
		}
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	e := New(DefaultWeights())

	recs, err := e.Recommend(nil, nil, nil, nil, 10)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty result for empty catalog, got %d items", len(recs))
	}
}

func TestSimilarTo_NeverIncludesTarget(t *testing.T) {
	e := New(DefaultWeights())

	catalog := testCatalog()
	target := catalog[0]

	recs, err := e.SimilarTo(target, catalog, 10)
	if err != nil {
		t.Fatalf("SimilarTo failed: %v", err)
	}
	if len(recs) != 4 {
		t.Errorf("expected 4 results, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.Item.ID == target.ID {
			t.Error("target item present in its own similarity results")
		}
	}
	// Item 2 shares genre, category and type with item 1.
	if recs[0].Item.ID != 2 {
		t.Errorf("most similar item = %d, want 2", recs[0].Item.ID)
	}
}

func TestTrending_RanksByWatchCount(t *testing.T) {
	e := New(DefaultWeights())

	catalog := testCatalog()
	pool := []domain.WatchHistoryEntry{
		{ContentID: 3}, {ContentID: 3}, {ContentID: 3},
		{ContentID: 1}, {ContentID: 1},
		{ContentID: 5},
	}

	recs, err := e.Trending(catalog, pool, 3)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}

	want := []int64{3, 1, 5}
	if len(recs) != len(want) {
		t.Fatalf("got %d results, want %d", len(recs), len(want))
	}
	for i, id := range want {
		if recs[i].Item.ID != id {
			t.Errorf("position %d = %d, want %d", i, recs[i].Item.ID, id)
		}
	}
	if recs[0].Score != 3 {
		t.Errorf("top trending score = %f, want 3 (watch count)", recs[0].Score)
	}
}

func TestTrending_TieKeepsCatalogOrder(t *testing.T) {
	e := New(DefaultWeights())

	recs, err := e.Trending(testCatalog(), nil, 10)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}

	// No watches at all: every count is zero, catalog order must hold.
	want := []int64{1, 2, 3, 4, 5}
	for i, id := range want {
		if recs[i].Item.ID != id {
			t.Errorf("position %d = %d, want %d", i, recs[i].Item.ID, id)
		}
	}
}
