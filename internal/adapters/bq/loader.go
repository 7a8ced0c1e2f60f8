// Package bq issues server-side BigQuery load jobs against stored report
// artifacts.
package bq

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/bigquery"

	"github.com/buyers-scofflaw/s1-bq-connector/internal/core"
)

// Options holds the fixed load-job parameters for one destination table.
type Options struct {
	Dataset  string
	Table    string
	Location string
	Logger   *slog.Logger
}

// Loader implements core.WarehouseLoader. Each load instructs BigQuery to
// read the object directly from storage; the payload bytes never transit
// this process.
type Loader struct {
	client   *bigquery.Client
	dataset  string
	table    string
	location string
	logger   *slog.Logger
}

var _ core.WarehouseLoader = (*Loader)(nil)

// NewLoader validates the options and constructs a Loader.
func NewLoader(client *bigquery.Client, opts Options) (*Loader, error) {
	if client == nil {
		return nil, errors.New("bigquery client is required")
	}
	if opts.Dataset == "" || opts.Table == "" {
		return nil, errors.New("dataset and table are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Loader{
		client:   client,
		dataset:  opts.Dataset,
		table:    opts.Table,
		location: opts.Location,
		logger:   opts.Logger,
	}, nil
}

// Load appends the object at objectURI into the destination table and
// returns the row count BigQuery reports. Zero rows is a legitimate outcome
// for an empty report. There is no retry: a failed load is fatal to the run,
// and because the disposition is append-only a successful load is not safe
// to repeat for the same date.
func (l *Loader) Load(ctx context.Context, objectURI string) (int64, error) {
	loader := l.client.Dataset(l.dataset).Table(l.table).LoaderFrom(newReportSource(objectURI))
	loader.WriteDisposition = bigquery.WriteAppend
	loader.Location = l.location

	job, err := loader.Run(ctx)
	if err != nil {
		return 0, &core.LoadSubmissionError{Err: err}
	}

	l.logger.InfoContext(ctx, "load job submitted", "job_id", job.ID(), "uri", objectURI)

	status, err := job.Wait(ctx)
	if err != nil {
		return 0, &core.LoadSubmissionError{Err: err}
	}
	if err := status.Err(); err != nil {
		return 0, &core.LoadJobError{Err: err}
	}

	var rows int64
	if stats, ok := status.Statistics.Details.(*bigquery.LoadStatistics); ok {
		rows = stats.OutputRows
	}
	return rows, nil
}

// newReportSource describes the fixed shape of a stored report artifact:
// comma-delimited CSV, gzip compressed, one header row, schema inferred by
// the warehouse.
func newReportSource(objectURI string) *bigquery.GCSReference {
	ref := bigquery.NewGCSReference(objectURI)
	ref.SourceFormat = bigquery.CSV
	ref.SkipLeadingRows = 1
	ref.AutoDetect = true
	ref.FieldDelimiter = ","
	return ref
}
