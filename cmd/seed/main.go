package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_site/internal/adapters/catalog"
	"hotel_site/internal/adapters/observability"
	redisad "hotel_site/internal/adapters/redis"
	"hotel_site/internal/app"
	"hotel_site/internal/shared"
	mysqlrepo "hotel_site/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "seed")

	log.Info().
		Str("catalog", cfg.CatalogBase).
		Int("workers", cfg.SeedWorkers).
		Int("slugs", len(cfg.SeedSlugs)).
		Msg("seed starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()

	// No slugs configured: write the built-in launch hotels and stop.
	if len(cfg.SeedSlugs) == 0 {
		svc := app.NewSeedService(nil, repo, cache)
		for _, b := range app.DefaultBundles() {
			if err := svc.SeedBundle(ctx, b); err != nil {
				log.Fatal().Err(err).Str("slug", b.Hotel.Slug).Msg("seed failed")
			}
			log.Info().Str("slug", b.Hotel.Slug).Msg("seeded")
		}
		log.Info().Msg("seed completed")
		return
	}

	feed, err := catalog.New(cfg.CatalogBase, cfg.CatalogKey, cfg.CatalogRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog client")
	}
	svc := app.NewSeedService(feed, repo, cache)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, slug := range cfg.SeedSlugs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Error().Err(err).Msg("semaphore acquire failed")
			break
		}

		wg.Add(1)
		go func(slug string) {
			defer wg.Done()
			defer sem.Release(1)

			if err := svc.ImportHotel(ctx, slug); err != nil {
				log.Warn().Str("slug", slug).Err(err).Msg("import failed")
				return
			}
			log.Info().Str("slug", slug).Msg("import ok")
		}(slug)
	}

	wg.Wait()
	log.Info().Msg("seed completed")
}
