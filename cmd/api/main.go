package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sagar-developer08/admin-ecom-sub002/api/routes"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/commission"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/payouts"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/reports"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/upstream"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/vendors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/config"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/db"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/metrics"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/migrate"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/redis"
)

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
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	upstreamClient, err := upstream.NewClient(
		cfg.Upstream.BaseURL,
		upstream.WithAPIKey(cfg.Upstream.APIKey),
		upstream.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout}),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build upstream client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(registry)

	reportsService, err := reports.NewService(
		upstreamClient,
		upstreamClient,
		redisClient,
		cfg.Reports.SnapshotTTL,
		logg,
		engineMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build reports service", err)
		os.Exit(1)
	}

	commissionRepo := commission.NewRepository(dbClient.DB())
	commissionService, err := commission.NewService(
		commissionRepo,
		upstreamClient,
		vendors.NewRegistryVerifier(upstreamClient),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build commission service", err)
		os.Exit(1)
	}

	payoutService, err := payouts.NewService(
		payouts.NewRepository(dbClient.DB()),
		commissionRepo,
		dbClient,
		logg,
		engineMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build payout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Redis:      redisClient,
			Reports:    reportsService,
			Commission: commissionService,
			Payouts:    payoutService,
			Registry:   registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
