// Package storage defines the workspace stores: named snapshots of record
// lists and the catalog of data files written or read.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/iudanet/statemod/internal/checksum"
	"github.com/iudanet/statemod/internal/models"
)

//go:generate moq -out snapshot_mock.go . SnapshotStorage

// Snapshot is a saved copy of one component's records, as the JSON written
// by models.MarshalRecords.
type Snapshot struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Component string
	Checksum  string
	Data      []byte
	Records   int
}

// NewSnapshot creates a snapshot with a fresh id and the checksum of data.
func NewSnapshot(name string, comp models.Component, data []byte, records int) *Snapshot {
	return &Snapshot{
		CreatedAt: time.Now().UTC(),
		ID:        uuid.New().String(),
		Name:      name,
		Component: comp.String(),
		Checksum:  checksum.Bytes(data),
		Data:      data,
		Records:   records,
	}
}

// Verify reports whether the data still matches the stored checksum.
func (s *Snapshot) Verify() bool {
	return checksum.Bytes(s.Data) == s.Checksum
}

// SnapshotStorage defines interface for storing record snapshots
type SnapshotStorage interface {
	// SaveSnapshot stores a snapshot and makes it the latest of its component
	SaveSnapshot(ctx context.Context, snap *Snapshot) error

	// GetSnapshot retrieves a snapshot by ID
	// Returns ErrSnapshotNotFound if snapshot doesn't exist
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshot returns the newest snapshot with the name
	FindSnapshot(ctx context.Context, name string) (*Snapshot, error)

	// ListSnapshots returns snapshots oldest first; empty component means all
	ListSnapshots(ctx context.Context, component string) ([]*Snapshot, error)

	// LatestSnapshot returns the snapshot saved last for the component
	LatestSnapshot(ctx context.Context, component string) (*Snapshot, error)

	// DeleteSnapshot removes a snapshot
	DeleteSnapshot(ctx context.Context, id string) error

	Close() error
}
