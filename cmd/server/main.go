package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/retail/backoffice/internal/application/identity"
	"github.com/retail/backoffice/internal/application/ledger"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/auth"
	"github.com/retail/backoffice/internal/infrastructure/cache"
	"github.com/retail/backoffice/internal/infrastructure/config"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"github.com/retail/backoffice/internal/infrastructure/persistence"
	"github.com/retail/backoffice/internal/infrastructure/persistence/tenant"
	"github.com/retail/backoffice/internal/infrastructure/telemetry"
	"github.com/retail/backoffice/internal/interfaces/http/handler"
	"github.com/retail/backoffice/internal/interfaces/http/middleware"
	"github.com/retail/backoffice/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/retail/backoffice/docs"
)

//	@title			Backoffice Ledger API
//	@version		1.0
//	@description	Multi-tenant sale and credit ledger

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting backoffice ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	meter := meterProvider.Meter("backoffice")
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	// From here on every entry is also exported to the collector
	log = telemetry.BridgeLogger(log, telemetry.ZapBridgeConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		LoggerProvider: loggerProvider,
		Level:          logger.ParseLevel(cfg.Log.Level),
	})

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg.Telemetry), log).RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil && meterProvider.IsEnabled() {
		if _, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB); err != nil {
			log.Warn("Failed to register database pool metrics", zap.Error(err))
		}
	}

	// Redis backs the token blacklist and the idempotency store when enabled
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		defer func() {
			_ = redisClient.Close()
		}()
	}
	idempotencyStore := cache.NewIdempotencyStore(redisClient, log)
	defer func() {
		_ = idempotencyStore.Close()
	}()

	// Ledger services
	provider := tenant.NewProvider(db.DB, tenant.WithLockTimeout(cfg.Ledger.LockTimeout))
	scope := persistence.NewGormTransactionScope(provider)
	clock := shared.SystemClock{}

	saleService := ledger.NewSaleService(scope, clock, ledger.Options{RestockOnReturn: cfg.Ledger.RestockOnReturn}, log)
	creditService := ledger.NewCreditService(scope, clock, log)
	if meterProvider.IsEnabled() {
		ledgerMetrics, err := telemetry.NewLedgerMetrics(meter)
		if err != nil {
			log.Warn("Failed to create ledger metrics", zap.Error(err))
		} else {
			saleService.SetMetrics(ledgerMetrics)
			creditService.SetMetrics(ledgerMetrics)
		}
	}

	// Authentication
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(
		persistence.NewGormUserDirectory(db.DB, provider),
		jwtService,
		blacklist,
		log,
	)
	if cfg.JWT.Disabled {
		log.Warn("JWT authentication disabled, tenants are taken from the X-Tenant-ID header")
	}

	httpMeter := meter
	if !meterProvider.IsEnabled() {
		httpMeter = nil
	}

	engine, err := router.NewEngine(router.EngineConfig{
		Logger:         log,
		HTTP:           cfg.HTTP,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: tracerProvider.IsEnabled(),
		Meter:          httpMeter,
		JWT: middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		},
		AuthDisabled: cfg.JWT.Disabled,
		Idempotency: middleware.IdempotencyConfig{
			Store:  idempotencyStore,
			TTL:    cfg.Ledger.IdempotencyTTL,
			Logger: log,
		},
		Swagger: middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		},
	}, router.Handlers{
		Health:  handler.NewHealthHandler(db, cfg.App.Name),
		Auth:    handler.NewAuthHandler(authService),
		Sales:   handler.NewSaleHandler(saleService),
		Credits: handler.NewCreditHandler(creditService),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Logger provider shutdown failed", zap.Error(err))
	}
}
