package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/commission"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/cron"
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
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	reportsService, err := reports.NewService(
		upstreamClient,
		upstreamClient,
		redisClient,
		cfg.Reports.SnapshotTTL,
		logg,
		nil,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build reports service", err)
		os.Exit(1)
	}

	commissionService, err := commission.NewService(
		commission.NewRepository(dbClient.DB()),
		upstreamClient,
		vendors.NewRegistryVerifier(upstreamClient),
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to build commission service", err)
		os.Exit(1)
	}

	refreshJob, err := cron.NewSnapshotRefreshJob(cron.SnapshotRefreshJobParams{
		Logger:     logg,
		Reports:    reportsService,
		Commission: commissionService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build snapshot refresh job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker"), cfg.Reports.RefreshInterval)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	scheduler, err := cron.NewScheduler(cron.SchedulerParams{
		Logger:   logg,
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Reports.RefreshInterval,
		Jobs:     []cron.Job{refreshJob},
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create scheduler", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "starting cron worker")

	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}
