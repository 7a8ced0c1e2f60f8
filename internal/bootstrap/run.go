package bootstrap

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/buyers-scofflaw/s1-bq-connector/config"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/adapters/bq"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/adapters/gcs"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/adapters/runlock"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/adapters/s1"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/core"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/observability/statsd"
)

// Run executes one connector cycle end to end: load and validate
// configuration, connect clients, take the per-date run lock when configured,
// and drive the pipeline. It returns the first error encountered; a nil
// return means the warehouse load completed.
func Run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	logger = logger.With("run_id", uuid.NewString())
	logStartupInfo(ctx, logger, &cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics, err := NewMetrics(cfg.Observability.Metrics, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := metrics.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics failed", "error", cerr)
		}
	}()

	storageClient, err := ConnectStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := storageClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close storage client failed", "error", cerr)
		}
	}()

	warehouseClient, err := ConnectWarehouse(ctx, cfg.Warehouse)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := warehouseClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close warehouse client failed", "error", cerr)
		}
	}()

	redisClient, err := ConnectRedis(ctx, cfg.RunLock, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	pipeline, err := buildPipeline(&cfg, storageClient, warehouseClient, logger, metrics)
	if err != nil {
		return err
	}

	if redisClient == nil {
		_, err = pipeline.Run(ctx)
		return err
	}
	return runLocked(ctx, &cfg, logger, redisClient, pipeline)
}

// runLocked holds the per-date run lock for the duration of the pipeline,
// refreshing its TTL in the background so a long polling window does not
// lose the lock mid-run.
func runLocked(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
	redisClient *redis.Client,
	pipeline *core.Pipeline,
) error {
	lock := runlock.New(redisClient, cfg.RunLock.TTL, logger)
	key := runlock.Key(cfg.Warehouse.TableID(), cfg.Report.TargetDate(time.Now()))

	held, err := lock.Acquire(ctx, key)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		held.KeepAlive(gctx, done)
		return nil
	})
	g.Go(func() error {
		defer close(done)
		_, perr := pipeline.Run(gctx)
		return perr
	})

	runErr := g.Wait()

	// Release on a fresh context so lock cleanup survives cancellation.
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if rerr := held.Release(releaseCtx); rerr != nil {
		logger.ErrorContext(ctx, "release run lock failed", "error", rerr)
	}

	return runErr
}

func buildPipeline(
	cfg *config.AppConfig,
	storageClient *storage.Client,
	warehouseClient *bigquery.Client,
	logger *slog.Logger,
	metrics statsd.Sink,
) (*core.Pipeline, error) {
	client, err := s1.NewClient(s1.Options{
		Host:         cfg.Report.Host,
		ReportType:   cfg.Report.Type,
		Days:         cfg.Report.Days,
		Date:         cfg.Report.Date,
		AuthKey:      cfg.Report.AuthKey,
		MaxAttempts:  cfg.Report.PollMaxAttempts,
		PollInterval: cfg.Report.PollInterval,
		HTTPTimeout:  cfg.Report.HTTPTimeout,
		Logger:       logger,
		Metrics:      metrics,
	})
	if err != nil {
		return nil, err
	}

	writer, err := gcs.NewWriter(storageClient, cfg.Storage.Bucket, logger)
	if err != nil {
		return nil, err
	}

	loader, err := bq.NewLoader(warehouseClient, bq.Options{
		Dataset:  cfg.Warehouse.Dataset,
		Table:    cfg.Warehouse.Table,
		Location: cfg.Warehouse.Location,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	return core.NewPipeline(core.PipelineOptions{
		Requester:        client,
		Poller:           client,
		Fetcher:          client,
		Store:            writer,
		Loader:           loader,
		Logger:           logger,
		Metrics:          metrics,
		ResolveDate:      cfg.Report.TargetDate,
		ReportType:       cfg.Report.Type,
		SiteLabel:        cfg.Report.SiteLabel,
		Bucket:           cfg.Storage.Bucket,
		Prefix:           cfg.Storage.Prefix,
		DestinationTable: cfg.Warehouse.TableID(),
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting connector run",
		"report_type", cfg.Report.Type,
		"site", cfg.Report.SiteLabel,
		"bucket", cfg.Storage.Bucket,
		"table", cfg.Warehouse.TableID(),
		"run_lock", cfg.RunLock.Enabled())
}
