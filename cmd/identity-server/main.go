package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eventflow/identity-service/internal/api"
	"github.com/eventflow/identity-service/internal/core/ports"
	"github.com/eventflow/identity-service/internal/infrastructure/config"
	mongoconn "github.com/eventflow/identity-service/internal/infrastructure/db/mongo"
	redisconn "github.com/eventflow/identity-service/internal/infrastructure/db/redis"
	"github.com/eventflow/identity-service/internal/infrastructure/revocation"
	"github.com/eventflow/identity-service/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 5 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; write directly and bail.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB (credential store) ---
	mongoClient, db, err := mongoconn.Connect(ctx, mongoconn.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	// --- Revocation list backend ---
	var revocations ports.RevocationList
	var rdb *redis.Client
	switch cfg.Revocation.Backend {
	case config.RevocationBackendRedis:
		rdb, err = redisconn.Connect(ctx, redisconn.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		revocations = redisconn.NewRevocationList(rdb)
	default:
		memList := revocation.NewMemoryList(log)
		memList.StartSweeper(ctx, sweepInterval)
		revocations = memList
	}

	log.Info().
		Str("algorithm", cfg.JWT.Algorithm).
		Int("expiration_hours", cfg.JWT.ExpirationHours).
		Str("revocation_backend", cfg.Revocation.Backend).
		Msg("token service configuration")

	e, err := api.NewRouter(ctx, db, rdb, revocations, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("identity service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
