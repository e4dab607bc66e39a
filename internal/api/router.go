package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventflow/identity-service/internal/api/handler"
	"github.com/eventflow/identity-service/internal/core/ports"
	"github.com/eventflow/identity-service/internal/core/service"
	"github.com/eventflow/identity-service/internal/infrastructure/config"
	mongorepo "github.com/eventflow/identity-service/internal/infrastructure/db/mongo"
)

const requestTimeout = 10 * time.Second

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb is nil when the memory revocation backend is active.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, revocations ports.RevocationList, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))
	// Bounds every storage and hashing call; an in-flight operation may
	// still complete server-side after the caller gives up, which is safe
	// because issuance and revocation are idempotent.
	e.Use(echomiddleware.ContextTimeout(requestTimeout))

	// --- Dependencies ---
	userRepo, err := mongorepo.NewUserRepository(ctx, db)
	if err != nil {
		return nil, err
	}
	credentialService := service.NewCredentialService(userRepo, log)
	tokenService, err := service.NewTokenService(
		cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.Lifetime(), revocations, log)
	if err != nil {
		return nil, err
	}
	identityHandler := handler.NewIdentityHandler(credentialService, tokenService)

	// --- Identity RPC routes ---
	e.POST("/v1/auth/authenticate", identityHandler.Authenticate)
	e.POST("/v1/auth/validate", identityHandler.ValidateToken)
	e.POST("/v1/auth/invalidate", identityHandler.InvalidateToken)
	e.POST("/v1/users", identityHandler.CreateUser)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
