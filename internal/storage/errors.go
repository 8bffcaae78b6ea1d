package storage

import "errors"

// Common workspace storage errors
var (
	// ErrSnapshotNotFound indicates that snapshot was not found
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrFileNotFound indicates that file is not registered in the catalog
	ErrFileNotFound = errors.New("catalog file not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
