// Package app wires together all dependencies and runs the catalog service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/jaumet/avook-catalog/pkg/database"
	"github.com/jaumet/avook-catalog/pkg/health"
	"github.com/jaumet/avook-catalog/pkg/httpclient"

	"github.com/jaumet/avook-catalog/internal/catalog"
	"github.com/jaumet/avook-catalog/internal/chat"
	"github.com/jaumet/avook-catalog/internal/checkout"
	"github.com/jaumet/avook-catalog/internal/checkout/mock"
	checkoutstripe "github.com/jaumet/avook-catalog/internal/checkout/stripe"
	"github.com/jaumet/avook-catalog/internal/config"
	"github.com/jaumet/avook-catalog/internal/event"
	handler "github.com/jaumet/avook-catalog/internal/handler/http"
	pgrepo "github.com/jaumet/avook-catalog/internal/repository/postgres"
	"github.com/jaumet/avook-catalog/internal/service"
	"github.com/jaumet/avook-catalog/internal/translate"

	pkgkafka "github.com/jaumet/avook-catalog/pkg/kafka"
)

// App holds the running components of the catalog service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	catalog    *service.Catalog
	pool       *pgxpool.Pool
	cache      *redis.Client
	producer   *pkgkafka.Producer
	consumers  []*pkgkafka.Consumer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	source, err := a.buildSource(ctx)
	if err != nil {
		return nil, err
	}
	a.catalog = service.NewCatalog(source, logger)

	// The service starts with the catalog loaded; a source failure at boot
	// is a configuration problem, not something to limp past.
	if err := a.catalog.Load(ctx); err != nil {
		a.closeInfra()
		return nil, fmt.Errorf("initial catalog load: %w", err)
	}

	if cfg.RedisHost != "" {
		cache, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			a.closeInfra()
			return nil, fmt.Errorf("init redis: %w", err)
		}
		a.cache = cache
		logger.Info("redis link cache initialized", slog.String("addr", cfg.Redis().Addr()))
	}

	if len(cfg.KafkaBrokers) > 0 {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)

		reloadConsumer := event.NewConsumer(a.catalog, logger)
		for _, topic := range event.Topics() {
			consumerCfg := pkgkafka.ConsumerConfig{
				Brokers:  cfg.KafkaBrokers,
				GroupID:  "catalog-service",
				Topic:    topic,
				MinBytes: 1,
				MaxBytes: 10e6, // 10 MB
			}
			a.consumers = append(a.consumers, pkgkafka.NewConsumer(consumerCfg, reloadConsumer.Handle, logger))
		}
		logger.Info("kafka reload consumers initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.Int("topic_count", len(event.Topics())),
		)
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		a.closeInfra()
		return nil, err
	}
	checkoutService := checkout.NewService(provider, a.cache, kafkaPublisher(a.producer), logger)

	var chatClient *chat.Client
	if cfg.ChatURL != "" {
		chatHTTP := httpclient.NewBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultBreakerConfig("chat"),
			logger,
		)
		chatClient = chat.NewClient(chatHTTP, cfg.ChatURL)
	}

	translator, err := translate.LoadDir(cfg.TranslationsDir)
	if err != nil {
		a.closeInfra()
		return nil, fmt.Errorf("load translations: %w", err)
	}

	healthHandler := health.NewHandler()
	healthHandler.Register("catalog", func(context.Context) error {
		_, err := a.catalog.Index()
		return err
	})
	if a.pool != nil {
		healthHandler.Register("postgres", a.pool.Ping)
	}
	if a.cache != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return a.cache.Ping(ctx).Err()
		})
	}
	if len(cfg.KafkaBrokers) > 0 {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}

	router := handler.NewRouter(handler.Handlers{
		Catalog:   handler.NewCatalogHandler(a.catalog, logger),
		Checkout:  handler.NewCheckoutHandler(checkoutService, a.catalog, logger),
		Chat:      handler.NewChatHandler(chatClient, logger),
		Translate: handler.NewTranslateHandler(translator, logger),
	}, healthHandler, logger)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// buildSource selects the catalog source from the configuration.
func (a *App) buildSource(ctx context.Context) (catalog.Source, error) {
	switch a.cfg.CatalogSource {
	case "remote":
		client := httpclient.NewBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultBreakerConfig("catalog-backend"),
			a.logger,
		)
		a.logger.Info("remote catalog source initialized", slog.String("url", a.cfg.CatalogURL))
		return catalog.NewRemoteSource(client, a.cfg.CatalogURL), nil
	case "postgres":
		pgCfg := a.cfg.Postgres()
		pool, err := database.NewPostgresPool(ctx, &pgCfg, a.logger)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		a.pool = pool
		a.logger.Info("postgres catalog source initialized", slog.String("host", pgCfg.Host))
		return catalog.NewRepositorySource(pgrepo.NewTitleRepository(pool)), nil
	default:
		a.logger.Info("file catalog source initialized", slog.String("path", a.cfg.CatalogFile))
		return catalog.NewFileSource(a.cfg.CatalogFile), nil
	}
}

func buildProvider(cfg *config.Config) (checkout.Provider, error) {
	if cfg.CheckoutProvider == "stripe" {
		provider, err := checkoutstripe.New(checkoutstripe.Config{
			APIKey:     cfg.StripeAPIKey,
			SuccessURL: cfg.StripeSuccessURL,
			CancelURL:  cfg.StripeCancelURL,
		})
		if err != nil {
			return nil, fmt.Errorf("init stripe provider: %w", err)
		}
		return provider, nil
	}
	return mock.New(), nil
}

// kafkaPublisher adapts a possibly-nil producer to the checkout publisher
// interface without handing the service a typed nil.
func kafkaPublisher(p *pkgkafka.Producer) checkout.Publisher {
	if p == nil {
		return nil
	}
	return p
}

// Run starts the HTTP server and Kafka consumers, blocking until the context
// is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	for _, c := range a.consumers {
		go func() {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
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

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.closeInfra()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

func (a *App) closeInfra() {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
