// Package config defines the connector's configuration surface.
//
// Configuration is loaded once at startup from environment variables using
// the github.com/caarlos0/env library and passed explicitly to every
// component; nothing reads ambient environment state after startup. See the
// individual domain config files:
//   - report.go: reporting service and polling configuration
//   - storage.go: object storage and warehouse configuration
//   - observability.go: metrics and run-lock configuration
package config

import (
	"fmt"
	"strings"
)

// AppConfig is the root configuration value for one connector run.
type AppConfig struct {
	// Report configures the reporting service client and the polling loop.
	Report ReportConfig `envPrefix:"S1_"`

	// Storage configures the destination object store.
	Storage StorageConfig `envPrefix:"GCS_"`

	// Warehouse configures the destination table and load job.
	Warehouse WarehouseConfig `envPrefix:"BQ_"`

	// RunLock configures the optional per-date run lock.
	RunLock RunLockConfig `envPrefix:"RUNLOCK_"`

	// Observability configures metrics emission.
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
func (c *AppConfig) Sanitize() {
	c.Report.Sanitize()
	c.RunLock.Sanitize()
	c.Observability.Sanitize()
}

// Validate fails fast on missing required values, before any network call is
// attempted.
func (c *AppConfig) Validate() error {
	var missing []string
	missing = append(missing, c.Report.missing()...)
	missing = append(missing, c.Storage.missing()...)
	missing = append(missing, c.Warehouse.missing()...)

	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return c.Report.validateDate()
}

// ConfigurationError reports required configuration that was absent at
// startup.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}
