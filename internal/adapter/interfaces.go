package adapter

import (
	"context"
	"io"
	"time"
)

// BlobStore manages named blobs inside a logical container of the remote
// storage provider. Implementations must support long-lived streaming in
// both directions without buffering whole objects.
type BlobStore interface {
	// EnsureBucket finds or creates the configured container. Idempotent;
	// the discovery result is cached for the process lifetime.
	EnsureBucket(ctx context.Context) error

	// Upload streams content into the store under key. The caller must
	// not create a metadata record referencing key unless Upload returned
	// nil — upload-then-record is the mandated order.
	Upload(ctx context.Context, content io.Reader, key, mimeType string) error

	// DownloadStream opens a streaming read of the blob at key.
	// Returns ErrBlobNotFound for dangling references.
	DownloadStream(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the blob at key. Deleting an already-absent blob is
	// success, not error.
	Delete(ctx context.Context, key string) error
}

// URLSigner mints pre-authorized, time-boxed read URLs for blobs, so
// content can be fetched directly from the provider without routing bytes
// through the application process.
type URLSigner interface {
	IssueGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
