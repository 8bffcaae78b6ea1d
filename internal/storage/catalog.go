package storage

import (
	"context"
	"time"
)

//go:generate moq -out catalog_mock.go . CatalogStorage

// CatalogFile is a data file known to the workspace.
type CatalogFile struct {
	AddedAt   time.Time
	Path      string
	Component string
	Checksum  string
	ID        int64
	Revision  int
	Records   int
}

// CatalogRecord is one record of a catalog file, in file order.
type CatalogRecord struct {
	RecordID string
	Name     string
	Position int
}

// CatalogHit is a record found in the catalog with the file it lives in.
type CatalogHit struct {
	Path      string
	Component string
	CatalogRecord
}

// CatalogStorage defines interface for the file catalog
type CatalogStorage interface {
	// RegisterFile adds a file or replaces the entry with the same path
	RegisterFile(ctx context.Context, file *CatalogFile, records []CatalogRecord) error

	// GetFile returns the entry for path
	// Returns ErrFileNotFound if path is not registered
	GetFile(ctx context.Context, path string) (*CatalogFile, error)

	// ListFiles returns all entries sorted by path
	ListFiles(ctx context.Context) ([]*CatalogFile, error)

	// FindRecord returns every registered record with the id, ignoring case
	FindRecord(ctx context.Context, id string) ([]CatalogHit, error)

	// RemoveFile removes the entry and its records
	RemoveFile(ctx context.Context, path string) error

	Close() error
}
