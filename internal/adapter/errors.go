package adapter

import "errors"

var (
	// ErrBlobNotFound is returned when a requested blob does not exist in
	// the remote store (including dangling references left behind by a
	// partially completed deletion).
	ErrBlobNotFound = errors.New("blob not found in remote store")

	// ErrBucketUnavailable is returned when the logical container cannot
	// be found or created.
	ErrBucketUnavailable = errors.New("blob store bucket unavailable")
)
