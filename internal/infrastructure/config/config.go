package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Revocation list backends.
const (
	RevocationBackendMemory = "memory"
	RevocationBackendRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT        JWTConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Revocation RevocationConfig
}

type JWTConfig struct {
	Secret          string `env:"JWT_SECRET_KEY, required"`
	Algorithm       string `env:"JWT_ALGORITHM,        default=HS256"`
	ExpirationHours int    `env:"JWT_EXPIRATION_HOURS, default=1"`
}

// Lifetime returns the configured token lifetime as a duration.
func (j JWTConfig) Lifetime() time.Duration {
	return time.Duration(j.ExpirationHours) * time.Hour
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=eventflow_idm"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type RevocationConfig struct {
	// Backend selects where revocations live: "memory" keeps them local to
	// this process (acceptable for a single-instance deployment, lost on
	// restart), "redis" shares them across instances with per-entry TTLs.
	Backend string `env:"REVOCATION_BACKEND, default=memory"`
}

// Load reads configuration from environment variables using go-envconfig.
// Configuration is read once at process start; there is no hot-reload.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch cfg.Revocation.Backend {
	case RevocationBackendMemory, RevocationBackendRedis:
	default:
		return nil, fmt.Errorf("config: unknown revocation backend %q", cfg.Revocation.Backend)
	}
	return &cfg, nil
}
