package config

import (
	"strings"
	"time"
)

const defaultMetricsPrefix = "s1bq"

// ObservabilityConfig groups configuration that controls metrics emission.
type ObservabilityConfig struct {
	Metrics ObservabilityMetricsConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Metrics.Sanitize()
}

// ObservabilityMetricsConfig controls emission of metrics to a
// StatsD-compatible sink.
type ObservabilityMetricsConfig struct {
	Enabled       bool   `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
	Prefix        string `env:"OBSERVABILITY_METRICS_PREFIX"         envDefault:"s1bq"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.Enabled = false
	}
	if strings.TrimSpace(c.Prefix) == "" {
		c.Prefix = defaultMetricsPrefix
	}
}

// RunLockConfig controls the optional Redis lock that keeps two runs for the
// same target date from appending into the warehouse table concurrently. The
// lock is enabled only when a Redis address is configured.
type RunLockConfig struct {
	RedisAddr     string `env:"REDIS_ADDR"     envDefault:""`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	// TTL bounds how long a crashed run can hold the lock. It should exceed
	// the worst-case polling window.
	TTL time.Duration `env:"TTL" envDefault:"45m"`
}

// Sanitize normalises run lock configuration values.
func (c *RunLockConfig) Sanitize() {
	c.RedisAddr = strings.TrimSpace(c.RedisAddr)
	if c.TTL < time.Minute {
		c.TTL = time.Minute
	}
}

// Enabled reports whether the run lock is active after sanitisation.
func (c *RunLockConfig) Enabled() bool {
	return c.RedisAddr != ""
}
