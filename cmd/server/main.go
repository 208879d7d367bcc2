package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/finwallet/internal/adapter/http"
	"github.com/iho/finwallet/internal/adapter/http/handler"
	"github.com/iho/finwallet/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/finwallet/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finwallet/internal/adapter/repository/redis"
	"github.com/iho/finwallet/internal/infrastructure/auth"
	"github.com/iho/finwallet/internal/infrastructure/config"
	"github.com/iho/finwallet/internal/infrastructure/logger"
	"github.com/iho/finwallet/internal/infrastructure/postgres"
	"github.com/iho/finwallet/internal/infrastructure/redis"
	"github.com/iho/finwallet/internal/usecase"
	"github.com/iho/finwallet/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

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

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	groupRepo := postgresRepo.NewGroupRepository(pool)
	budgetRepo := postgresRepo.NewBudgetRepository(pool)
	scheduleRepo := postgresRepo.NewScheduleRepository(pool)
	rateRepo := postgresRepo.NewRateRepository(pool)
	activityRepo := postgresRepo.NewActivityRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	rateUC := usecase.NewRateUseCase(rateRepo, cache, idGen)
	walletUC := usecase.NewWalletUseCase(txManager, walletRepo, groupRepo, activityRepo, idGen)
	mergeUC := usecase.NewMergeUseCase(txManager, walletRepo, activityRepo, rateUC, retrier)
	transferUC := usecase.NewTransferUseCase(txManager, walletRepo, activityRepo, rateUC, retrier)
	budgetUC := usecase.NewBudgetUseCase(txManager, budgetRepo, walletRepo, activityRepo, idGen)
	scheduleUC := usecase.NewScheduleUseCase(txManager, scheduleRepo, walletUC, transferUC, activityRepo, idGen)

	// HTTP surface
	routerCfg := httpAdapter.RouterConfig{
		WalletHandler:    handler.NewWalletHandler(walletUC),
		MergeHandler:     handler.NewMergeHandler(mergeUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		BudgetHandler:    handler.NewBudgetHandler(budgetUC),
		ScheduleHandler:  handler.NewScheduleHandler(scheduleUC),
		RateHandler:      handler.NewRateHandler(rateUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
	}

	if cfg.RateLimitPerSecond > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}

	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		routerCfg.JWTManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	router := httpAdapter.NewRouter(routerCfg)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Background schedule runner
	runnerCtx, stopRunner := context.WithCancel(ctx)
	runner := worker.NewScheduleRunner(worker.Config{
		Executor: scheduleUC,
		Logger:   log.Logger,
		Interval: cfg.ScheduleInterval,
	})
	go func() {
		if err := runner.Start(runnerCtx); err != nil && runnerCtx.Err() == nil {
			log.Error().Err(err).Msg("schedule runner stopped")
		}
	}()

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
	stopRunner()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
