package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "hbnb_web/internal/adapters/http_server"
	"hbnb_web/internal/adapters/hbnb"
	"hbnb_web/internal/adapters/observability"
	redisad "hbnb_web/internal/adapters/redis"
	"hbnb_web/internal/app"
	"hbnb_web/internal/session"
	"hbnb_web/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	backend, err := hbnb.New(cfg.BnbBase, cfg.BnbRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize backend client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var tokens session.Store
	switch cfg.SessionStore {
	case "redis":
		tokens = session.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	default:
		tokens = session.NewCookieStore()
	}
	log.Info().Str("store", cfg.SessionStore).Str("filter_mode", string(cfg.FilterMode)).Msg("session store ready")

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Views:      app.NewViewService(backend, cache, cfg.CacheTTL, cfg.FilterMode),
		Auth:       app.NewAuthService(backend),
		Reviews:    app.NewReviewService(backend, cache),
		Tokens:     tokens,
		SessionTTL: cfg.SessionTTL,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("web listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
