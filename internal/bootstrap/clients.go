package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/buyers-scofflaw/s1-bq-connector/config"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/observability/statsd"
)

const clientUserAgent = "s1-bq-connector"

// ConnectStorage creates the object store client. Credentials come from the
// ambient environment (application default credentials).
func ConnectStorage(ctx context.Context) (*storage.Client, error) {
	client, err := storage.NewClient(ctx, option.WithUserAgent(clientUserAgent))
	if err != nil {
		return nil, fmt.Errorf("connect object storage: %w", err)
	}
	return client, nil
}

// ConnectWarehouse creates the warehouse client for the configured project.
func ConnectWarehouse(ctx context.Context, cfg config.WarehouseConfig) (*bigquery.Client, error) {
	client, err := bigquery.NewClient(ctx, cfg.Project, option.WithUserAgent(clientUserAgent))
	if err != nil {
		return nil, fmt.Errorf("connect warehouse: %w", err)
	}
	return client, nil
}

// ConnectRedis creates the run-lock Redis client and verifies connectivity.
// Returns nil when the run lock is not configured.
func ConnectRedis(ctx context.Context, cfg config.RunLockConfig, logger *slog.Logger) (*redis.Client, error) {
	if !cfg.Enabled() {
		logger.InfoContext(ctx, "run lock disabled", "reason", "no redis address configured")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

// NewMetrics creates the StatsD client. A disabled configuration yields a
// functioning no-op client.
func NewMetrics(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) (*statsd.Client, error) {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Enabled,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
		GlobalTags: map[string]string{
			"service": "s1-bq-connector",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}
	return client, nil
}
