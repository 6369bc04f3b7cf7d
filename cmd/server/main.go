package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/fulcrumpay/walletd/internal/adapter/http"
	"github.com/fulcrumpay/walletd/internal/adapter/http/handler"
	"github.com/fulcrumpay/walletd/internal/adapter/http/middleware"
	postgresRepo "github.com/fulcrumpay/walletd/internal/adapter/repository/postgres"
	redisRepo "github.com/fulcrumpay/walletd/internal/adapter/repository/redis"
	"github.com/fulcrumpay/walletd/internal/infrastructure/config"
	"github.com/fulcrumpay/walletd/internal/infrastructure/logger"
	"github.com/fulcrumpay/walletd/internal/infrastructure/metrics"
	"github.com/fulcrumpay/walletd/internal/infrastructure/postgres"
	"github.com/fulcrumpay/walletd/internal/infrastructure/redis"
	"github.com/fulcrumpay/walletd/internal/usecase"
)

const migrationsPath = "internal/infrastructure/postgres/migrations"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize metrics
	m := metrics.New()

	// Initialize use cases
	walletUC := usecase.NewWalletUseCase(txManager, walletRepo, entryRepo, idGen, retrier, m)
	transferUC := usecase.NewTransferUseCase(txManager, walletRepo, entryRepo, idGen, retrier, m)
	entryUC := usecase.NewEntryUseCase(entryRepo)

	// Initialize handlers
	walletHandler := handler.NewWalletHandler(walletUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	entryHandler := handler.NewEntryHandler(entryUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:    walletHandler,
		TransferHandler:  transferHandler,
		EntryHandler:     entryHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
