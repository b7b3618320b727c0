package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/odam/tallybot/internal/adapter/http"
	"github.com/odam/tallybot/internal/adapter/http/handler"
	postgresRepo "github.com/odam/tallybot/internal/adapter/repository/postgres"
	redisRepo "github.com/odam/tallybot/internal/adapter/repository/redis"
	"github.com/odam/tallybot/internal/adapter/telegram"
	"github.com/odam/tallybot/internal/domain"
	"github.com/odam/tallybot/internal/infrastructure/config"
	"github.com/odam/tallybot/internal/infrastructure/logger"
	"github.com/odam/tallybot/internal/infrastructure/metrics"
	"github.com/odam/tallybot/internal/infrastructure/postgres"
	"github.com/odam/tallybot/internal/infrastructure/redis"
	"github.com/odam/tallybot/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	defaultRate, err := decimal.NewFromString(cfg.DefaultRate)
	if err != nil {
		appLogger.Warn().Str("value", cfg.DefaultRate).Msg("unparseable DEFAULT_RATE, using built-in default")
		defaultRate = domain.DefaultRate
	}

	// Initialize repositories
	retrier := postgresRepo.NewRetrier(appLogger)
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool, retrier)
	settingsRepo := postgresRepo.NewSettingsRepository(pool, defaultRate)
	reportCache := redisRepo.NewReportCache(redisClient)
	resetStore := redisRepo.NewResetStore(redisClient)
	idGen := redisRepo.NewULIDGenerator()

	// Initialize use cases
	m := metrics.New()
	ledgerUC := usecase.NewLedgerUseCase(entryRepo, settingsRepo, resetStore, reportCache, idGen, m)
	reportUC := usecase.NewReportUseCase(txManager, entryRepo, settingsRepo, reportCache, m, appLogger)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReportHandler: handler.NewReportHandler(reportUC),
		LedgerHandler: handler.NewLedgerHandler(ledgerUC),
		RateHandler:   handler.NewRateHandler(ledgerUC),
		ResetHandler:  handler.NewResetHandler(ledgerUC),
		ExportHandler: handler.NewExportHandler(ledgerUC),
		HealthHandler: handler.NewHealthHandler(pool, redisClient),
		Logger:        appLogger,
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
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Start telegram bot when a token is configured
	botCtx, stopBot := context.WithCancel(ctx)
	defer stopBot()

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, ledgerUC, reportUC, telegram.Config{
			RecentLimit:        cfg.RecentLimit,
			SummaryRecentLimit: cfg.SummaryRecentLimit,
		}, m, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to create telegram bot")
		}

		go func() {
			if err := bot.Run(botCtx); err != nil && !errors.Is(err, context.Canceled) {
				appLogger.Error().Err(err).Msg("telegram bot stopped")
			}
		}()
	} else {
		appLogger.Info().Msg("TELEGRAM_TOKEN not set, running API-only")
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")
	stopBot()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
