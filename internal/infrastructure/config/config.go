package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BackendURL is the base URL of the hospital-management API.
	BackendURL string `env:"BACKEND_URL, default=http://localhost:3000"`

	Cookie CookieConfig
	Redis  RedisConfig
}

type CookieConfig struct {
	Name   string        `env:"SESSION_COOKIE,     default=portal_sid"`
	TTL    time.Duration `env:"SESSION_COOKIE_TTL, default=24h"`
	Secure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

type RedisConfig struct {
	// Addr may be empty, in which case tokens are kept in memory and
	// sessions do not survive a restart.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return &cfg
}
