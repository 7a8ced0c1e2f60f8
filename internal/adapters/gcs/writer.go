// Package gcs streams report payloads into Google Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/storage"

	"github.com/buyers-scofflaw/s1-bq-connector/internal/core"
)

// Writer implements core.ObjectStoreWriter on top of a GCS bucket.
type Writer struct {
	bucket     *storage.BucketHandle
	bucketName string
	logger     *slog.Logger
}

var _ core.ObjectStoreWriter = (*Writer)(nil)

// NewWriter constructs a Writer for the given bucket.
func NewWriter(client *storage.Client, bucketName string, logger *slog.Logger) (*Writer, error) {
	if client == nil {
		return nil, errors.New("storage client is required")
	}
	if bucketName == "" {
		return nil, errors.New("bucket name is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Writer{
		bucket:     client.Bucket(bucketName),
		bucketName: bucketName,
		logger:     logger,
	}, nil
}

// Write streams r into the object at objectPath as a single-shot transfer.
// The payload never sits fully in memory and no local file is involved. On
// error the destination object's final state is unspecified; the
// deterministic path means the next run for the same date overwrites it.
func (w *Writer) Write(ctx context.Context, r io.Reader, objectPath string) error {
	start := time.Now()

	obj := w.bucket.Object(objectPath)
	sw := obj.NewWriter(ctx)
	sw.ContentType = "application/gzip"
	// Disable the resumable protocol: report payloads are moderate in size
	// and a failed transfer is fatal to the run anyway.
	sw.ChunkSize = 0

	written, err := io.Copy(sw, r)
	if err != nil {
		_ = sw.Close()
		return &core.StorageWriteError{Object: objectPath, Err: err}
	}
	if err := sw.Close(); err != nil {
		return &core.StorageWriteError{Object: objectPath, Err: err}
	}

	w.logger.InfoContext(ctx, "object written",
		"bucket", w.bucketName,
		"object", objectPath,
		"size_bytes", written,
		"duration_ms", time.Since(start).Milliseconds())

	return nil
}
