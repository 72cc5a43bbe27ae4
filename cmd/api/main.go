package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/scentvault/storefront-backend/api/routes"
	"github.com/scentvault/storefront-backend/internal/orders"
	"github.com/scentvault/storefront-backend/internal/pricing"
	"github.com/scentvault/storefront-backend/internal/shipping"
	"github.com/scentvault/storefront-backend/pkg/config"
	"github.com/scentvault/storefront-backend/pkg/db"
	"github.com/scentvault/storefront-backend/pkg/instance"
	"github.com/scentvault/storefront-backend/pkg/logger"
	"github.com/scentvault/storefront-backend/pkg/metrics"
	"github.com/scentvault/storefront-backend/pkg/migrate"
	"github.com/scentvault/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Instance:    instance.ID(),
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var redisClient *redis.Client
	var snapshotCache *shipping.SnapshotCache
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
		snapshotCache = shipping.NewSnapshotCache(redisClient, cfg.Shipping.SnapshotTTL)
	} else {
		logg.Warn(ctx, "redis not configured; snapshot cache and quote rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	shippingService, err := shipping.NewService(
		shipping.NewRepository(dbClient.DB()),
		dbClient,
		snapshotCache,
		metrics.NewShippingMetrics(registry),
		logg,
	)
	if err != nil {
		return err
	}

	pricingService, err := pricing.NewService(
		pricing.NewRepository(dbClient.DB()),
		pricing.Options{
			DefaultPairSample: cfg.Pricing.DefaultPairSample,
			MaxPairSample:     cfg.Pricing.MaxPairSample,
			DealsPageSize:     cfg.Pricing.DealsPageSize,
			CatalogLimit:      cfg.Pricing.CatalogLimit,
		},
		metrics.NewPricingMetrics(registry),
		logg,
	)
	if err != nil {
		return err
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, shippingService, logg)
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			registry,
			metrics.NewHTTPMetrics(registry),
			dbClient,
			redisClient,
			shippingService,
			pricingService,
			ordersService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr}), "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(context.Background(), "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
