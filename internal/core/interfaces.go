// Package core defines the report ingestion pipeline: the ports each step
// implements, the error taxonomy, and the orchestrator that sequences one
// report cycle for a single logical day.
package core

import (
	"context"
	"io"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// ReportRequester issues the report-creation call against the reporting
// service and returns the opaque report identifier it assigns.
type ReportRequester interface {
	RequestReport(ctx context.Context) (string, error)
}

// StatusPoller re-queries report status until a terminal state or an
// exhausted attempt budget, and returns the fully resolved, credentialed
// content URL on success.
type StatusPoller interface {
	PollStatus(ctx context.Context, reportID string) (string, error)
}

// ContentFetcher retrieves the report payload from the resolved content
// location, following redirects. The caller owns the returned reader.
type ContentFetcher interface {
	Fetch(ctx context.Context, contentURL string) (io.ReadCloser, error)
}

// ObjectStoreWriter streams payload bytes into durable object storage at the
// given path. The write is single-shot: no resume, no chunking.
type ObjectStoreWriter interface {
	Write(ctx context.Context, r io.Reader, objectPath string) error
}

// WarehouseLoader issues a server-side bulk load of the stored object into
// the destination table and returns the row count the warehouse reports.
type WarehouseLoader interface {
	Load(ctx context.Context, objectURI string) (int64, error)
}
