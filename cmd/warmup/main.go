package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hbnb_web/internal/adapters/hbnb"
	"hbnb_web/internal/adapters/observability"
	redisad "hbnb_web/internal/adapters/redis"
	"hbnb_web/internal/app"
	"hbnb_web/internal/shared"
)

// warmup primes the view cache so the first page loads after a deploy
// don't all fan out to the backend at once.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.BnbBase).
		Int("workers", cfg.Workers).
		Msg("warmup starting")

	backend, err := hbnb.New(cfg.BnbBase, cfg.BnbRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize backend client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	views := app.NewViewService(backend, cache, cfg.CacheTTL, cfg.FilterMode)

	// anonymous fetch; the list itself lands in the cache as a side effect
	places, err := views.ListPlaces(ctx, "")
	if err != nil {
		log.Fatal().Err(err).Msg("places fetch failed")
	}
	log.Info().Int("count", len(places)).Msg("places cached")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, p := range places {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if _, err := views.GetPlace(ctx, "", id); err != nil {
				log.Warn().Str("id", id).Err(err).Msg("warm failed")
				return
			}
			log.Info().Str("id", id).Msg("warm ok")
		}(p.ID)
	}

	wg.Wait()
	log.Info().Msg("warmup completed")
}
