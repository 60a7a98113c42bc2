package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/EcommerceGo/storefront/internal/cart"
	"github.com/utafrali/EcommerceGo/storefront/internal/catalog"
	"github.com/utafrali/EcommerceGo/storefront/internal/config"
	"github.com/utafrali/EcommerceGo/storefront/internal/event"
	handler "github.com/utafrali/EcommerceGo/storefront/internal/handler/http"
	"github.com/utafrali/EcommerceGo/storefront/internal/wishlist"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
	"github.com/utafrali/EcommerceGo/storefront/pkg/health"
	"github.com/utafrali/EcommerceGo/storefront/pkg/httpclient"
	pkgkafka "github.com/utafrali/EcommerceGo/storefront/pkg/kafka"
	"github.com/utafrali/EcommerceGo/storefront/pkg/tracing"
)

const (
	serviceName        = "storefront"
	slowQueryThreshold = 200 * time.Millisecond
)

// NewCatalog builds the catalog client behind a retrying HTTP client and a
// circuit breaker.
func NewCatalog(cfg *config.Config, logger *slog.Logger) *catalog.Client {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.CatalogTimeout
	httpCfg.MaxRetries = cfg.CatalogMaxRetries

	breaker := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("catalog"),
		logger,
	)
	return catalog.NewClient(cfg.CatalogBaseURL, breaker, logger)
}

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *Store
	carts      *cart.Engine
	wishlists  *wishlist.Engine
	producer   *pkgkafka.Producer
	relay      *event.Relay
	relayDone  chan struct{}
	stopRelay  context.CancelFunc
	tracing    func(context.Context) error
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
// Engines start hydrating in the background; requests served before
// hydration completes see the empty initial state.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tcfg := tracing.DefaultConfig(serviceName)
	tcfg.Enabled = cfg.OTELEnabled
	tcfg.OTLPEndpoint = cfg.OTELEndpoint
	tcfg.SampleRate = cfg.OTELSampleRate
	tcfg.Environment = cfg.Environment
	shutdownTracing, err := tracing.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	database.SetSlowQueryLogging(slowQueryThreshold, logger)

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		_ = shutdownTracing(context.Background())
		return nil, err
	}

	carts := cart.NewEngine(store, cfg.StorageNamespace, logger)
	wishlists := wishlist.NewEngine(store, cfg.StorageNamespace, logger)
	carts.HydrateAsync(context.Background())
	wishlists.HydrateAsync(context.Background())

	catalogClient := NewCatalog(cfg, logger)

	a := &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		carts:     carts,
		wishlists: wishlists,
		tracing:   shutdownTracing,
	}

	// Health checks.
	healthHandler := health.NewHandler(serviceName)
	healthHandler.Register(store.Backend, store.Ping)
	healthHandler.Register("catalog", catalogClient.Ping)

	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		a.relay = event.NewRelay(a.producer, cfg.StorageNamespace, logger)
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	router := handler.NewRouter(catalogClient, carts, wishlists, healthHandler, logger, handler.RouterOptions{
		PageSize:       cfg.CatalogPageSize,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return a, nil
}

// Handler returns the HTTP handler served by Run.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	if a.relay != nil {
		relayCtx, stop := context.WithCancel(ctx)
		a.stopRelay = stop
		a.relayDone = make(chan struct{})
		go func() {
			defer close(a.relayDone)
			a.relay.Run(relayCtx, a.carts, a.wishlists)
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("storage", a.store.Backend),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components. Pending state writes are
// flushed before the store is closed.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.relayDone != nil {
		a.stopRelay()
		select {
		case <-a.relayDone:
		case <-shutdownCtx.Done():
			a.logger.Warn("event relay did not stop before deadline")
		}
	}

	if err := a.carts.Flush(shutdownCtx); err != nil {
		a.logger.Error("cart flush error", slog.String("error", err.Error()))
	}
	if err := a.wishlists.Flush(shutdownCtx); err != nil {
		a.logger.Error("wishlist flush error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("storage close error", slog.String("error", err.Error()))
	}

	if err := a.tracing(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
