// Package main is the entry point for the Panasonic distribution API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/amriddinov-m/panasonic-api/internal/config"
	"github.com/amriddinov-m/panasonic-api/internal/core/clock"
	"github.com/amriddinov-m/panasonic-api/internal/domain/auth"
	v1 "github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/http/v1/handlers"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/cache"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/metrics"
	"github.com/amriddinov-m/panasonic-api/internal/infrastructure/storage/postgres"
	"github.com/amriddinov-m/panasonic-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	ctx := context.Background()
	log.Infow("starting panasonic api", "env", cfg.AppEnv)

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)
	m := metrics.New()

	deps := v1.ServiceDeps{
		TxManager:     txm,
		Clock:         clock.System{},
		ReportOptions: cfg.ReportOptions(),
		Metrics:       m,
	}
	checks := map[string]handlers.Pinger{"postgres": txm}

	// --- Redis (optional) ---
	if cfg.RedisEnabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warnw("redis unavailable at startup", "addr", cfg.RedisAddr, "error", err)
		}

		reportCache, err := cache.NewReportCache(rdb, cfg.ReportCacheTTL, cfg.ReportCacheCompressThreshold)
		if err != nil {
			log.Fatalw("failed to create report cache", "error", err)
		}
		deps.ReportCache = reportCache
		deps.Locker = cache.NewLocker(rdb, cfg.DocumentLockTTL)
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Infow("report cache and document locks enabled", "addr", cfg.RedisAddr)
	} else {
		log.Info("redis not configured, report cache and document locks disabled")
	}

	// --- JWT (optional) ---
	routerCfg := v1.RouterConfig{
		Services:     v1.NewServices(deps),
		Logger:       log,
		Metrics:      m,
		CORSOrigins:  cfg.CORSAllowedOrigins,
		HealthChecks: checks,
	}
	if cfg.IsDevelopment() {
		routerCfg.Mode = gin.DebugMode
	}
	if cfg.AuthEnabled() {
		jwtCfg := auth.DefaultJWTConfig(cfg.JWTSecret)
		jwtCfg.Issuer = cfg.JWTIssuer
		routerCfg.JWTValidator = auth.NewTokenValidator(jwtCfg)
	} else {
		log.Warn("JWT_SECRET not set, API authentication disabled")
	}

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      v1.NewRouter(routerCfg),
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
		IdleTimeout:  2 * cfg.AppWriteTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.AppAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AppShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
