package engine

import (
	"testing"

	"github.com/streamcast/recommendation-service/internal/domain"
)

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func fltPtr(f float64) *float64 { return &f }

func newTestEngine(opts ...Option) *Engine {
	return New(DefaultWeights(), opts...)
}

func TestSimilarity_DisjointItemsScoreZero(t *testing.T) {
	e := newTestEngine()

	a := domain.ContentItem{ID: 1, CategoryID: 1, Genre: strPtr("drama"), Tags: []string{"noir"}, Type: domain.ContentTypeMovie, DurationSec: intPtr(1000)}
	b := domain.ContentItem{ID: 2, CategoryID: 2, Genre: strPtr("comedy"), Tags: []string{"slapstick"}, Type: domain.ContentTypeSeries, DurationSec: intPtr(5000)}

	if got := e.Similarity(a, b); got != 0 {
		t.Errorf("Similarity = %f, want 0 for items sharing nothing", got)
	}
}

func TestSimilarity_AttributeContributions(t *testing.T) {
	e := newTestEngine()
	w := DefaultWeights()

	tests := []struct {
		name string
		a, b domain.ContentItem
		want float64
	}{
		{
			name: "genre match only",
			a:    domain.ContentItem{CategoryID: 1, Genre: strPtr("drama")},
			b:    domain.ContentItem{CategoryID: 2, Genre: strPtr("drama")},
			want: w.Genre,
		},
		{
			name: "category match only",
			a:    domain.ContentItem{CategoryID: 7},
			b:    domain.ContentItem{CategoryID: 7},
			want: w.Category,
		},
		{
			name: "content type match only",
			a:    domain.ContentItem{CategoryID: 1, Type: domain.ContentTypeMovie},
			b:    domain.ContentItem{CategoryID: 2, Type: domain.ContentTypeMovie},
			want: w.ContentType,
		},
		{
			name: "unknown content type never matches",
			a:    domain.ContentItem{CategoryID: 1},
			b:    domain.ContentItem{CategoryID: 2},
			want: 0,
		},
		{
			name: "tag overlap is jaccard times weight",
			a:    domain.ContentItem{CategoryID: 1, Tags: []string{"heist", "noir"}},
			b:    domain.ContentItem{CategoryID: 2, Tags: []string{"noir", "thriller"}},
			want: 1.0 / 3.0 * w.Tag,
		},
		{
			name: "missing genre on one side contributes nothing",
			a:    domain.ContentItem{CategoryID: 1, Genre: strPtr("drama")},
			b:    domain.ContentItem{CategoryID: 2},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Similarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Similarity = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSimilarity_DurationProximityBands(t *testing.T) {
	e := newTestEngine()
	w := DefaultWeights()

	tests := []struct {
		name     string
		durA     *int
		durB     *int
		want     float64
	}{
		{"identical durations", intPtr(1800), intPtr(1800), w.Duration},
		{"just inside near band", intPtr(1800), intPtr(2399), w.Duration},
		{"exactly at near boundary", intPtr(1800), intPtr(2400), w.Duration / 2},
		{"just inside far band", intPtr(1800), intPtr(2999), w.Duration / 2},
		{"exactly at far boundary", intPtr(1800), intPtr(3000), 0},
		{"missing on one side", intPtr(1800), nil, 0},
		{"missing on both sides", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.ContentItem{CategoryID: 1, DurationSec: tt.durA}
			b := domain.ContentItem{CategoryID: 2, DurationSec: tt.durB}
			if got := e.Similarity(a, b); got != tt.want {
				t.Errorf("Similarity = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	e := newTestEngine()

	a := domain.ContentItem{ID: 1, CategoryID: 3, Genre: strPtr("drama"), Tags: []string{"war", "epic"}, Type: domain.ContentTypeMovie, DurationSec: intPtr(7200)}
	b := domain.ContentItem{ID: 2, CategoryID: 3, Genre: strPtr("drama"), Tags: []string{"epic"}, Type: domain.ContentTypeSeries, DurationSec: intPtr(6800)}

	if ab, ba := e.Similarity(a, b), e.Similarity(b, a); ab != ba {
		t.Errorf("Similarity not symmetric: %f vs %f", ab, ba)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"x"}, nil, 0},
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1},
		{"disjoint", []string{"a"}, []string{"b"}, 0},
		{"partial overlap", []string{"a", "b", "c"}, []string{"b", "c", "d"}, 0.5},
		{"duplicates count once", []string{"a", "a"}, []string{"a"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jaccard(tt.a, tt.b); got != tt.want {
				t.Errorf("jaccard(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
