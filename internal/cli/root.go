// Package cli implements the storectl command: a terminal storefront session
// driving the gateway client the same way the web UI does, with the session
// restored from the credential store between invocations.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopstream/storefront-gateway/internal/credential"
	"github.com/shopstream/storefront-gateway/internal/gateway"
	"github.com/shopstream/storefront-gateway/internal/infrastructure/db/redis"
	"github.com/shopstream/storefront-gateway/internal/pkg/config"
	"github.com/shopstream/storefront-gateway/internal/session"
	"github.com/shopstream/storefront-gateway/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "storectl",
	Short:         "Storefront session and catalogue tool",
	Long:          "storectl drives the storefront backend through the same gateway client the web UI uses: one persisted session per device, restored on every invocation.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// env bundles the per-invocation dependencies every subcommand needs.
type env struct {
	client  *gateway.Client
	session *session.Context
}

// newEnv builds the store, gateway client, and session context from
// configuration and attempts session restoration.
func newEnv(ctx context.Context) (*env, error) {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := gateway.NewClient(ctx, gateway.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Store:   store,
		Logger:  log,
	})

	sess := session.New(client, log)
	sess.Restore(ctx)

	return &env{client: client, session: sess}, nil
}

func newStore(ctx context.Context, cfg *config.Config) (credential.Store, error) {
	switch cfg.Credential.Store {
	case "memory":
		return credential.NewMemStore(), nil
	case "redis":
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, fmt.Errorf("credential store: %w", err)
		}
		return credential.NewRedisStore(rdb), nil
	case "file", "":
		return credential.NewFileStore(cfg.Credential.File)
	default:
		return nil, fmt.Errorf("unknown credential store %q", cfg.Credential.Store)
	}
}
