package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gamewallet/internal/adapter/http"
	"github.com/iho/gamewallet/internal/adapter/http/handler"
	"github.com/iho/gamewallet/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/gamewallet/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gamewallet/internal/adapter/repository/redis"
	"github.com/iho/gamewallet/internal/infrastructure/config"
	"github.com/iho/gamewallet/internal/infrastructure/eventpublisher"
	"github.com/iho/gamewallet/internal/infrastructure/logger"
	"github.com/iho/gamewallet/internal/infrastructure/metrics"
	"github.com/iho/gamewallet/internal/infrastructure/postgres"
	"github.com/iho/gamewallet/internal/infrastructure/redis"
	"github.com/iho/gamewallet/internal/usecase"
)

const serviceName = "gamewallet"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", serviceName).Logger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	// Connect to Redis
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClientWithConfig(ctx, cfg.RedisClientConfig())
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		logger.Info().Msg("connected to redis")
	}

	registry := newRegistry()
	m := metrics.New(registry)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	moneyLogRepo := postgresRepo.NewMoneyLogRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(logger)

	var outboxRepo usecase.OutboxRepository = postgresRepo.NewOutboxRepository(pool)
	if !cfg.OutboxEnabled {
		outboxRepo = postgresRepo.NewNullOutboxRepository()
	}

	var partners usecase.PartnerRepository = postgresRepo.NewPartnerRepository(pool)
	if redisClient != nil {
		partners = redisRepo.NewPartnerCache(redisClient, partners, cfg.PartnerCacheTTL, logger)
	}

	// Initialize use cases
	walletUC := usecase.NewWalletUseCase(usecase.WalletConfig{
		TxManager:          txManager,
		AccountRepo:        accountRepo,
		TxRepo:             txRepo,
		MoneyLogRepo:       moneyLogRepo,
		OutboxRepo:         outboxRepo,
		IDGen:              idGen,
		Retrier:            retrier,
		Currencies:         usecase.NewStaticCurrencyPolicy(cfg.SupportedCurrencies),
		Observer:           m,
		Logger:             logger,
		BalanceCurrency:    cfg.BalanceCurrency,
		TransactionTimeout: cfg.TransactionTimeout,
	})
	batchUC := usecase.NewBatchUseCase(usecase.BatchConfig{
		TxManager:          txManager,
		AccountRepo:        accountRepo,
		TxRepo:             txRepo,
		MoneyLogRepo:       moneyLogRepo,
		OutboxRepo:         outboxRepo,
		IDGen:              idGen,
		Retrier:            retrier,
		Observer:           m,
		Logger:             logger,
		TransactionTimeout: cfg.TransactionTimeout,
	})
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, outboxRepo, idGen)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, moneyLogRepo, logger).
		WithWorkers(cfg.ReconcileWorkers)
	authUC := usecase.NewAuthUseCase(partners, logger)

	// Initialize handlers
	walletHandler := handler.NewWalletHandler(handler.WalletConfig{
		Wallet:       walletUC,
		Verifier:     authUC,
		Observer:     m,
		Logger:       logger,
		Currency:     cfg.ResponseCurrency,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
	basicHandler := handler.NewBasicHandler(batchUC, logger, cfg.MaxBodyBytes)
	accountHandler := handler.NewAccountHandler(accountUC)
	consistencyHandler := handler.NewConsistencyHandler(reconciliationUC, m, logger)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	rateLimiter := newRateLimiter(cfg, m)
	if rateLimiter != nil {
		go rateLimiter.Run(ctx, time.Minute)
	}

	if cfg.OutboxEnabled {
		publisher, closePublisher, err := newPublisher(cfg, logger)
		if err != nil {
			return err
		}
		defer closePublisher()

		relay := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  publisher,
			Logger:     logger,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxInterval,
			Retention:  cfg.OutboxRetention,
		})
		go func() {
			if err := relay.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("event publisher stopped")
			}
		}()
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:      walletHandler,
		BasicHandler:       basicHandler,
		AccountHandler:     accountHandler,
		ConsistencyHandler: consistencyHandler,
		HealthHandler:      healthHandler,
		Authenticator:      authUC,
		AuthObserver:       m,
		HTTPMetrics:        middleware.NewHTTPMetrics(registry),
		RateLimiter:        rateLimiter,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AdminToken:         cfg.AdminToken,
		Logger:             logger,
	})
	if cfg.AdminToken == "" {
		logger.Warn().Msg("ADMIN_TOKEN is empty, admin routes are disabled")
	}

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

func newRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// newPublisher returns the Kafka publisher when brokers are configured and
// a log publisher otherwise. The returned func releases the publisher.
func newPublisher(cfg *config.Config, logger zerolog.Logger) (eventpublisher.Publisher, func() error, error) {
	brokers := eventpublisher.ParseBrokers(cfg.KafkaBrokers)
	if len(brokers) == 0 {
		logger.Info().Msg("no kafka brokers configured, logging outbox events")
		return eventpublisher.NewLogPublisher(logger), func() error { return nil }, nil
	}

	publisher, err := eventpublisher.NewKafkaPublisher(eventpublisher.KafkaConfig{
		Brokers: brokers,
		Topic:   cfg.KafkaTopic,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka publisher: %w", err)
	}
	logger.Info().Strs("brokers", brokers).Str("topic", cfg.KafkaTopic).Msg("publishing outbox events to kafka")

	return publisher, publisher.Close, nil
}

func newRateLimiter(cfg *config.Config, observer middleware.RateLimitObserver) *middleware.RateLimiter {
	if !cfg.RateLimitEnabled() {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithObserver(observer)
}
