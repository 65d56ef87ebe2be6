package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fastfix/marketplace-api/internal/api/handler"
	"github.com/fastfix/marketplace-api/internal/api/middleware"
	"github.com/fastfix/marketplace-api/internal/core/domain"
	"github.com/fastfix/marketplace-api/internal/core/ports"
	"github.com/fastfix/marketplace-api/internal/core/service"
	mongodb "github.com/fastfix/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/fastfix/marketplace-api/internal/infrastructure/db/redis"
	"github.com/fastfix/marketplace-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, gateway ports.NotificationGateway, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	identityService := service.NewIdentityService(accountRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	directoryService := service.NewDirectoryService(accountRepo, log)

	authHandler := handler.NewAuthHandler(identityService)
	workerHandler := handler.NewWorkerHandler(directoryService, gateway)

	authRateLimit := middleware.RateLimit(
		redisdb.NewWindowCounter(rdb),
		middleware.RateLimitConfig{Prefix: "auth", Limit: cfg.RateLimit.Limit, Window: cfg.RateLimit.Window},
		log,
	)
	requireToken := middleware.Auth(cfg.JWTSecret)
	requireCustomer := middleware.RequireRole(accountRepo, domain.RoleCustomer)

	// --- Auth routes ---
	auth := e.Group("/auth", authRateLimit)
	auth.POST("/register", authHandler.RegisterCustomer)
	auth.POST("/register/worker", authHandler.RegisterWorker)
	auth.POST("/login", authHandler.Login)
	auth.PUT("/update", authHandler.UpdateProfile)

	// --- Worker directory ---
	e.GET("/workers", workerHandler.List)
	e.GET("/workers/skill/:skill", workerHandler.ListBySkill)
	e.GET("/workers/:id", workerHandler.Get)

	// --- Contact initiation (customers only) ---
	e.POST("/workers/:id/call", workerHandler.Call, requireToken, requireCustomer)
	e.POST("/workers/:id/message", workerHandler.Message, requireToken, requireCustomer)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
