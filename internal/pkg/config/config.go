package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend    BackendConfig
	Credential CredentialConfig
	Redis      RedisConfig
}

// BackendConfig locates the upstream commerce backend.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_API_URL, default=http://localhost:8000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

// CredentialConfig selects where the session token is persisted.
// Store is one of: file, memory, redis.
type CredentialConfig struct {
	Store string `env:"CRED_STORE, default=file"`
	File  string `env:"CRED_FILE"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
