package seeds

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Setup populates the database with a deterministic sample dataset.
// The RNG is seeded so repeated runs produce the same data.
func Setup(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	rng := rand.New(rand.NewSource(42))

	log.Info().Msg("seed: truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE user_ratings, user_watch_history, content, users RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Info().Msg("seed: inserting users")
	if err := seedUsers(ctx, pool, rng, 20); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Info().Msg("seed: inserting content")
	if err := seedContent(ctx, pool, rng, 60); err != nil {
		return fmt.Errorf("seed content: %w", err)
	}

	log.Info().Msg("seed: inserting watch history")
	if err := seedWatchHistory(ctx, pool, rng, 250); err != nil {
		return fmt.Errorf("seed watch history: %w", err)
	}

	log.Info().Msg("seed: inserting ratings")
	if err := seedRatings(ctx, pool, rng, 80); err != nil {
		return fmt.Errorf("seed ratings: %w", err)
	}

	log.Info().Msg("seed: complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	countries := []string{"US", "GB", "CA", "AU", "DE", "FR", "JP", "BR"}
	subscriptionTypes := []string{"free", "basic", "premium"}
	subscriptionWeights := []float64{0.5, 0.3, 0.2}

	rows := []string{}
	args := []any{}

	for i := range n {
		country := countries[rng.Intn(len(countries))]
		subscription := weightedChoice(rng, subscriptionTypes, subscriptionWeights)
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))

		base := i * 3
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, country, subscription, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO users (country, subscription_type, created_at) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

type contentTemplate struct {
	genre    string
	category int64
	ctype    string
	titles   []string
	tags     []string
}

var templates = []contentTemplate{
	{
		genre: "action", category: 1, ctype: "movie",
		titles: []string{"Iron Pursuit", "Falling Sky", "Last Convoy", "Redline", "Stone Harbor", "The Extraction"},
		tags:   []string{"explosive", "chase", "heist", "martial-arts"},
	},
	{
		genre: "drama", category: 1, ctype: "movie",
		titles: []string{"Quiet Rivers", "The Long Winter", "Paper Houses", "Glass Harbor", "Northern Light", "Second Act"},
		tags:   []string{"family", "slow-burn", "award-winner", "character-study"},
	},
	{
		genre: "comedy", category: 2, ctype: "series",
		titles: []string{"Desk Jobs", "The Neighbors", "Laugh Track", "Split Decision", "Room Service", "Off Script"},
		tags:   []string{"sitcom", "workplace", "ensemble", "satire"},
	},
	{
		genre: "thriller", category: 1, ctype: "movie",
		titles: []string{"Night Circuit", "The Witness", "Cold Signal", "Vanishing Act", "Undertow", "The Interview"},
		tags:   []string{"noir", "mystery", "psychological", "slow-burn"},
	},
	{
		genre: "sci-fi", category: 2, ctype: "series",
		titles: []string{"Outer Reach", "Signal Lost", "The Colony", "Dark Orbit", "Machine Age", "Event Horizon"},
		tags:   []string{"space", "dystopia", "time-travel", "cyberpunk"},
	},
	{
		genre: "pop", category: 3, ctype: "music_video",
		titles: []string{"Neon Nights", "Echo Chamber", "Midnight Run", "Static Hearts", "Wavelength", "Afterglow"},
		tags:   []string{"live", "chart-topper", "acoustic"},
	},
}

func seedContent(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	ratings := []string{"G", "PG", "PG-13", "R"}

	rows := []string{}
	args := []any{}

	for i := range n {
		tmpl := templates[i%len(templates)]
		title := tmpl.titles[rng.Intn(len(tmpl.titles))]

		// Pick 1-3 tags from the template pool.
		tagCount := 1 + rng.Intn(3)
		tags := make([]string, 0, tagCount)
		for _, idx := range rng.Perm(len(tmpl.tags))[:tagCount] {
			tags = append(tags, tmpl.tags[idx])
		}

		var durationSec int
		switch tmpl.ctype {
		case "music_video":
			durationSec = 180 + rng.Intn(300)
		case "series":
			durationSec = 1200 + rng.Intn(1800)
		default:
			durationSec = 4800 + rng.Intn(4800)
		}

		releaseYear := 1990 + rng.Intn(36)
		premium := rng.Float64() < 0.3
		popularity := rng.Float64() * 100
		contentRating := ratings[rng.Intn(len(ratings))]
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(720))

		base := i * 11
		placeholders := make([]string, 11)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		rows = append(rows, "("+strings.Join(placeholders, ", ")+")")
		args = append(args, title, tmpl.category, tmpl.genre, tags, tmpl.ctype,
			releaseYear, durationSec, premium, popularity, contentRating, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO content
		(title, category_id, genre, tags, content_type, release_year, duration_sec, premium, popularity, content_rating, created_at)
		VALUES ` + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedWatchHistory(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	rows := []string{}
	args := []any{}

	for i := range n {
		userID := rng.Intn(20) + 1
		contentID := rng.Intn(60) + 1
		watchedAt := time.Now().Add(-time.Duration(rng.Intn(30*24)) * time.Hour)
		completed := rng.Float64() < 0.4
		watchTimePct := 100.0
		if !completed {
			watchTimePct = float64(rng.Intn(95) + 5)
		}

		base := i * 5
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5))
		args = append(args, userID, contentID, watchedAt, watchTimePct, completed)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO user_watch_history (user_id, content_id, watched_at, watch_time_pct, completed)
		VALUES ` + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedRatings(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	// Deduplicate (user, content) pairs up front to satisfy the primary key.
	type pair struct{ user, content int }
	seen := map[pair]struct{}{}

	rows := []string{}
	args := []any{}

	for len(seen) < n {
		p := pair{rng.Intn(20) + 1, rng.Intn(60) + 1}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		rating := float64(rng.Intn(5) + 1)
		ratedAt := time.Now().Add(-time.Duration(rng.Intn(60*24)) * time.Hour)

		base := len(rows) * 4
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, p.user, p.content, rating, ratedAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := `INSERT INTO user_ratings (user_id, content_id, rating, rated_at)
		VALUES ` + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func weightedChoice(rng *rand.Rand, choices []string, weights []float64) string {
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
