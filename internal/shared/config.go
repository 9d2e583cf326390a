package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"hbnb_web/internal/domain"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	BnbBase      string
	BnbRPS       int
	SessionStore string // cookie | redis
	SessionTTL   time.Duration
	FilterMode   domain.FilterMode
	CacheTTL     time.Duration
	Workers      int
}

func Load() Config {
	// .env is optional; real env always wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env load failed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		BnbBase:      env("BNB_BASE_URL", "http://127.0.0.1:5000/api/v1"),
		BnbRPS:       atoi("BNB_RPS", 5),
		SessionStore: env("SESSION_STORE", "cookie"),
		SessionTTL:   time.Duration(atoi("SESSION_TTL_SECONDS", 3600)) * time.Second,
		FilterMode:   domain.FilterMode(env("FILTER_MODE", string(domain.FilterLocal))),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
		Workers:      atoi("WARMUP_WORKERS", 8),
	}
	if c.FilterMode != domain.FilterLocal && c.FilterMode != domain.FilterRefetch {
		log.Warn().Str("mode", string(c.FilterMode)).Msg("unknown FILTER_MODE, using local")
		c.FilterMode = domain.FilterLocal
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
