package core

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/buyers-scofflaw/s1-bq-connector/internal/domain/model"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/observability/metrics"
	"github.com/buyers-scofflaw/s1-bq-connector/internal/observability/statsd"
)

// PipelineOptions holds the dependencies and fixed parameters for one
// pipeline instance.
type PipelineOptions struct {
	Requester ReportRequester
	Poller    StatusPoller
	Fetcher   ContentFetcher
	Store     ObjectStoreWriter
	Loader    WarehouseLoader

	Logger  *slog.Logger
	Metrics statsd.Sink

	// ResolveDate maps the invocation wall clock onto the target date string.
	// The explicit-date override and the today/yesterday policy are applied by
	// the configuration layer; the pipeline only invokes the resolved policy.
	ResolveDate func(now time.Time) string

	// Now is overridable for tests.
	Now func() time.Time

	ReportType       string
	SiteLabel        string
	Bucket           string
	Prefix           string
	DestinationTable string
}

// Pipeline sequences the five pipeline steps for one target date, short-
// circuiting on the first failure. It emits no compensating actions on
// partial failure: an object written before a failed load stays in place and
// is overwritten by the next run for the same date.
type Pipeline struct {
	requester ReportRequester
	poller    StatusPoller
	fetcher   ContentFetcher
	store     ObjectStoreWriter
	loader    WarehouseLoader

	logger  *slog.Logger
	metrics statsd.Sink

	resolveDate func(time.Time) string
	now         func() time.Time

	reportType       string
	siteLabel        string
	bucket           string
	prefix           string
	destinationTable string
}

// NewPipeline validates the options and constructs a Pipeline.
func NewPipeline(opts PipelineOptions) (*Pipeline, error) {
	if err := validatePipelineOptions(&opts); err != nil {
		return nil, err
	}

	return &Pipeline{
		requester:        opts.Requester,
		poller:           opts.Poller,
		fetcher:          opts.Fetcher,
		store:            opts.Store,
		loader:           opts.Loader,
		logger:           opts.Logger,
		metrics:          opts.Metrics,
		resolveDate:      opts.ResolveDate,
		now:              opts.Now,
		reportType:       opts.ReportType,
		siteLabel:        opts.SiteLabel,
		bucket:           opts.Bucket,
		prefix:           opts.Prefix,
		destinationTable: opts.DestinationTable,
	}, nil
}

func validatePipelineOptions(opts *PipelineOptions) error {
	switch {
	case opts.Requester == nil:
		return errors.New("report requester is required")
	case opts.Poller == nil:
		return errors.New("status poller is required")
	case opts.Fetcher == nil:
		return errors.New("content fetcher is required")
	case opts.Store == nil:
		return errors.New("object store writer is required")
	case opts.Loader == nil:
		return errors.New("warehouse loader is required")
	case opts.ResolveDate == nil:
		return errors.New("date resolver is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return nil
}

// Run performs exactly one report cycle: request, poll, fetch, store, load.
// Every error aborts the remaining steps immediately.
func (p *Pipeline) Run(ctx context.Context) (*model.LoadResult, error) {
	runStart := p.now()

	date := p.resolveDate(p.now().UTC())
	artifact := model.StoredArtifact{
		Bucket: p.bucket,
		Path:   model.ObjectPath(p.prefix, p.reportType, p.siteLabel, date),
	}

	logger := p.logger.With("date", date, "report_type", p.reportType, "site", p.siteLabel)
	logger.InfoContext(ctx, "starting report cycle", "object", artifact.Path, "table", p.destinationTable)

	reportID, err := p.requestReport(ctx, logger)
	if err != nil {
		return nil, p.fail(ctx, logger, "request", err)
	}

	contentURL, err := p.pollStatus(ctx, logger, reportID)
	if err != nil {
		return nil, p.fail(ctx, logger, "poll", err)
	}

	if err = p.transfer(ctx, logger, contentURL, artifact); err != nil {
		return nil, err
	}

	rows, err := p.loadWarehouse(ctx, logger, artifact)
	if err != nil {
		return nil, p.fail(ctx, logger, "load", err)
	}

	result := &model.LoadResult{
		DestinationTable: p.destinationTable,
		ObjectURI:        artifact.URI(),
		RowCount:         rows,
		Duration:         p.now().Sub(runStart),
	}

	logger.InfoContext(ctx, "report cycle complete",
		"rows", result.RowCount,
		"duration_ms", result.Duration.Milliseconds())
	metrics.EmitRunOutcome(p.metrics, metrics.ResultSuccess, result.Duration)
	metrics.EmitLoadedRows(p.metrics, p.destinationTable, rows)

	return result, nil
}

func (p *Pipeline) requestReport(ctx context.Context, logger *slog.Logger) (string, error) {
	start := time.Now()
	reportID, err := p.requester.RequestReport(ctx)
	metrics.EmitStep(p.metrics, "request", time.Since(start), err)
	if err != nil {
		return "", err
	}
	logger.InfoContext(ctx, "report requested", "report_id", reportID)
	return reportID, nil
}

func (p *Pipeline) pollStatus(ctx context.Context, logger *slog.Logger, reportID string) (string, error) {
	start := time.Now()
	contentURL, err := p.poller.PollStatus(ctx, reportID)
	metrics.EmitStep(p.metrics, "poll", time.Since(start), err)
	if err != nil {
		return "", err
	}
	logger.InfoContext(ctx, "report ready", "report_id", reportID)
	return contentURL, nil
}

// transfer moves the payload from the content location into object storage.
// The byte stream is owned by the storage writer for the duration of the
// copy and released on completion or error.
func (p *Pipeline) transfer(ctx context.Context, logger *slog.Logger, contentURL string, artifact model.StoredArtifact) error {
	fetchStart := time.Now()
	body, err := p.fetcher.Fetch(ctx, contentURL)
	metrics.EmitStep(p.metrics, "fetch", time.Since(fetchStart), err)
	if err != nil {
		return p.fail(ctx, logger, "fetch", err)
	}
	defer func() {
		if cerr := body.Close(); cerr != nil {
			logger.WarnContext(ctx, "close content stream failed", "error", cerr)
		}
	}()

	storeStart := time.Now()
	err = p.store.Write(ctx, body, artifact.Path)
	metrics.EmitStep(p.metrics, "store", time.Since(storeStart), err)
	if err != nil {
		return p.fail(ctx, logger, "store", err)
	}

	logger.InfoContext(ctx, "artifact stored", "uri", artifact.URI())
	return nil
}

func (p *Pipeline) loadWarehouse(ctx context.Context, logger *slog.Logger, artifact model.StoredArtifact) (int64, error) {
	start := time.Now()
	rows, err := p.loader.Load(ctx, artifact.URI())
	metrics.EmitStep(p.metrics, "load", time.Since(start), err)
	if err != nil {
		return 0, err
	}
	logger.InfoContext(ctx, "warehouse load complete", "rows", rows)
	return rows, nil
}

func (p *Pipeline) fail(ctx context.Context, logger *slog.Logger, step string, err error) error {
	logger.ErrorContext(ctx, "report cycle aborted", "step", step, "error", err)
	metrics.EmitRunOutcome(p.metrics, metrics.ResultError, 0)
	return err
}
