package config

import "strings"

// StorageConfig contains destination object store configuration.
type StorageConfig struct {
	// Bucket is the destination bucket name.
	Bucket string `env:"BUCKET"`

	// Prefix is the leading path segment for stored artifacts.
	Prefix string `env:"PREFIX"`
}

func (s *StorageConfig) missing() []string {
	var out []string
	if strings.TrimSpace(s.Bucket) == "" {
		out = append(out, "GCS_BUCKET")
	}
	if strings.TrimSpace(s.Prefix) == "" {
		out = append(out, "GCS_PREFIX")
	}
	return out
}

// WarehouseConfig contains destination table and load job configuration.
type WarehouseConfig struct {
	// Project is the warehouse project the destination table lives in.
	Project string `env:"PROJECT"`

	// Dataset is the destination dataset.
	Dataset string `env:"DATASET"`

	// Table is the destination table. Loads always append; the table is not
	// idempotent under re-runs for the same date.
	Table string `env:"TABLE"`

	// Location is the fixed storage region load jobs execute in.
	Location string `env:"LOCATION" envDefault:"US"`
}

// TableID returns the fully qualified destination table identity.
func (w *WarehouseConfig) TableID() string {
	return w.Project + "." + w.Dataset + "." + w.Table
}

func (w *WarehouseConfig) missing() []string {
	var out []string
	if strings.TrimSpace(w.Project) == "" {
		out = append(out, "BQ_PROJECT")
	}
	if strings.TrimSpace(w.Dataset) == "" {
		out = append(out, "BQ_DATASET")
	}
	if strings.TrimSpace(w.Table) == "" {
		out = append(out, "BQ_TABLE")
	}
	return out
}
