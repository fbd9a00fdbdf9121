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

	"github.com/shopstream/storefront-gateway/internal/api"
	"github.com/shopstream/storefront-gateway/internal/credential"
	"github.com/shopstream/storefront-gateway/internal/gateway"
	"github.com/shopstream/storefront-gateway/internal/infrastructure/db/redis"
	"github.com/shopstream/storefront-gateway/internal/pkg/config"
	"github.com/shopstream/storefront-gateway/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it the readiness probe only checks the
	// backend.
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
	}

	// The BFF itself runs anonymous: it forwards inbound Authorization
	// headers rather than holding a credential of its own.
	client := gateway.NewClient(ctx, gateway.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Store:   credential.NewMemStore(),
		Logger:  log,
	})

	e := api.NewRouter(api.RouterConfig{
		Upstream:        cfg.Backend.BaseURL,
		UpstreamTimeout: cfg.Backend.Timeout,
		Client:          client,
		Redis:           rdb,
		Logger:          log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("storefront bff listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
