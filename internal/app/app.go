package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	cartevent "github.com/marves/pcpartstore/internal/cart/event"
	cartredis "github.com/marves/pcpartstore/internal/cart/repository/redis"
	"github.com/marves/pcpartstore/internal/cart/store"
	"github.com/marves/pcpartstore/internal/catalog/repository"
	"github.com/marves/pcpartstore/internal/catalog/repository/httpapi"
	"github.com/marves/pcpartstore/internal/catalog/repository/memory"
	"github.com/marves/pcpartstore/internal/catalog/repository/postgres"
	"github.com/marves/pcpartstore/internal/catalog/service"
	"github.com/marves/pcpartstore/internal/config"
	"github.com/marves/pcpartstore/pkg/database"
	"github.com/marves/pcpartstore/pkg/health"
	"github.com/marves/pcpartstore/pkg/httpclient"
	pkgkafka "github.com/marves/pcpartstore/pkg/kafka"
)

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	pool       *pgxpool.Pool
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthHandler := health.NewHandler()

	// Redis backs cart persistence.
	rdb, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.Redis().Addr()),
		slog.Int("db", cfg.RedisDB),
	)
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	// Catalog provider selection.
	var (
		provider repository.Provider
		pool     *pgxpool.Pool
	)
	switch cfg.CatalogProvider {
	case config.ProviderPostgres:
		pgCfg := cfg.Postgres()
		pool, err = database.NewPostgresPool(ctx, &pgCfg, logger)
		if err != nil {
			rdb.Close()
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		database.RegisterPoolMetrics(pool)
		healthHandler.Register("postgres", func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
		provider = postgres.New(pool)
	case config.ProviderHTTP:
		client := httpclient.New(httpclient.DefaultConfig())
		cbClient := httpclient.NewCircuitBreakerClient(
			client,
			httpclient.DefaultCircuitBreakerConfig("products-api"),
			logger,
		)
		provider = httpapi.New(cbClient, cfg.ProductsAPIURL)
	default:
		provider = memory.New()
	}
	logger.Info("catalog provider initialized", slog.String("provider", cfg.CatalogProvider))

	// Kafka is optional. Without brokers cart events are dropped.
	var (
		producer      *pkgkafka.Producer
		eventProducer *cartevent.Producer
	)
	if len(cfg.KafkaBrokers) > 0 {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		eventProducer = cartevent.NewProducer(producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	catalogService := service.New(provider, logger)
	cartRepo := cartredis.NewCartRepository(rdb, cfg.CartTTL())
	carts := store.NewManager(cartRepo, eventProducer, logger)

	router := NewRouter(catalogService, carts, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		pool:       pool,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
