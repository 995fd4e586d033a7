package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/veldbank/corebank/internal/adapter/http"
	"github.com/veldbank/corebank/internal/adapter/http/handler"
	postgresRepo "github.com/veldbank/corebank/internal/adapter/repository/postgres"
	redisRepo "github.com/veldbank/corebank/internal/adapter/repository/redis"
	"github.com/veldbank/corebank/internal/infrastructure/auth"
	"github.com/veldbank/corebank/internal/infrastructure/config"
	"github.com/veldbank/corebank/internal/infrastructure/logger"
	"github.com/veldbank/corebank/internal/infrastructure/metrics"
	"github.com/veldbank/corebank/internal/infrastructure/postgres"
	"github.com/veldbank/corebank/internal/infrastructure/redis"
	"github.com/veldbank/corebank/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("authentication enabled")
	}

	// Repositories
	uowManager := postgresRepo.NewUnitOfWorkManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, userRepo, idGen)
	transactionUC := usecase.NewTransactionUseCase(uowManager, accountRepo, transactionRepo, userRepo, idGen, retrier)
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	// Handlers
	accountHandler := handler.NewAccountHandler(accountUC, m)
	transactionHandler := handler.NewTransactionHandler(transactionUC, m)
	atmHandler := handler.NewAtmHandler(transactionUC, m)
	userHandler := handler.NewUserHandler(userUC, jwtManager, m)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		AtmHandler:         atmHandler,
		LedgerHandler:      ledgerHandler,
		UserHandler:        userHandler,
		HealthHandler:      healthHandler,
		Logger:             log,
		Metrics:            m,
		IdempotencyStore:   idempotencyStore,
		JWTManager:         jwtManager,
		AtmRateLimit:       cfg.AtmRateLimit,
		AtmRateBurst:       cfg.AtmRateBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
