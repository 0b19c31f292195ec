package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/streamcast/recommendation-service/internal/cache"
	"github.com/streamcast/recommendation-service/internal/config"
	"github.com/streamcast/recommendation-service/internal/engine"
	"github.com/streamcast/recommendation-service/internal/handler"
	"github.com/streamcast/recommendation-service/internal/logging"
	"github.com/streamcast/recommendation-service/internal/repository"
	"github.com/streamcast/recommendation-service/internal/router"
	"github.com/streamcast/recommendation-service/internal/service"
	"github.com/streamcast/recommendation-service/seeds"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.Database.PoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")

	// ------------ Migrations ---------------
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate down")
		}
		log.Info().Msg("migrations dropped")
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate up")
	}

	if err := checkSeed(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	recCache := cache.New(redisClient, cfg.Cache.TTL)
	if err := recCache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis not ready")
	}
	log.Info().Msg("connected to Redis")

	// ------------ Wiring ---------------
	seed := cfg.Engine.FallbackSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng := engine.New(cfg.Engine.Weights, engine.WithRand(rand.New(rand.NewSource(seed))))

	repo := repository.New(pool)
	limits := service.Limits{
		CatalogLimit:      cfg.Engine.CatalogLimit,
		WatchHistoryLimit: cfg.Engine.WatchHistoryLimit,
		TrendingDays:      cfg.Engine.TrendingDays,
		TrendingPoolSize:  service.DefaultLimits().TrendingPoolSize,
	}
	svc := service.New(repo, recCache, eng, limits, log)
	h := handler.New(svc)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router.Setup(h, log, cfg.Server.RequestTimeout),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Int("attempt", i+1).Msg("waiting for database")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("check users count: %w", err)
	}
	if count > 0 {
		log.Info().Int("users", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool, log)
}
