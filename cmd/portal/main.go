package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rachitkhandelwal41/hospital-portal/internal/api"
	"github.com/rachitkhandelwal41/hospital-portal/internal/api/middleware"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/ports"
	"github.com/rachitkhandelwal41/hospital-portal/internal/core/session"
	"github.com/rachitkhandelwal41/hospital-portal/internal/infrastructure/backend"
	"github.com/rachitkhandelwal41/hospital-portal/internal/infrastructure/config"
	"github.com/rachitkhandelwal41/hospital-portal/internal/infrastructure/db/memory"
	"github.com/rachitkhandelwal41/hospital-portal/internal/infrastructure/db/redis"
	"github.com/rachitkhandelwal41/hospital-portal/pkg/logger"
)

func main() {
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") == "development",
	})

	cfg := config.Load(log)
	ctx := context.Background()

	// Token store: Redis when configured, in-memory otherwise. Without
	// Redis, sessions do not survive a portal restart.
	var (
		tokens ports.TokenStore
		rdb    *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()
		tokens = redis.NewTokenStore(rdb, cfg.Cookie.TTL)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, sessions will not survive restarts")
		tokens = memory.NewTokenStore()
	}

	gateway := backend.NewClient(cfg.BackendURL)
	sessions := session.NewManager(tokens, gateway, logger.Component("session"))

	e := api.NewRouter(api.RouterDeps{
		Sessions:   sessions,
		Gateway:    gateway,
		Redis:      rdb,
		BackendURL: cfg.BackendURL,
		Cookie: middleware.CookieOptions{
			Name:   cfg.Cookie.Name,
			TTL:    cfg.Cookie.TTL,
			Secure: cfg.Cookie.Secure,
		},
		Log: log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.BackendURL).Msg("portal listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
