package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/iudanet/statemod/internal/storage"
)

const latestKeyPrefix = "latest:"

func latestKey(component string) []byte {
	return []byte(latestKeyPrefix + component)
}

// SaveSnapshot stores a snapshot and makes it the latest of its component
func (s *Storage) SaveSnapshot(ctx context.Context, snap *storage.Snapshot) error {
	if snap == nil || snap.ID == "" {
		return fmt.Errorf("snapshot id cannot be empty")
	}

	return s.update(func(tx *bbolt.Tx) error {
		snaps, err := bucket(tx, bucketSnapshots)
		if err != nil {
			return err
		}
		meta, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}

		// Сериализуем снимок в JSON
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}

		if err := snaps.Put([]byte(snap.ID), data); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		// Последний снимок компонента
		if err := meta.Put(latestKey(snap.Component), []byte(snap.ID)); err != nil {
			return fmt.Errorf("failed to save latest snapshot: %w", err)
		}

		return nil
	})
}

// GetSnapshot retrieves a snapshot by ID
func (s *Storage) GetSnapshot(ctx context.Context, id string) (*storage.Snapshot, error) {
	var snap *storage.Snapshot

	err := s.view(func(tx *bbolt.Tx) error {
		snaps, err := bucket(tx, bucketSnapshots)
		if err != nil {
			return err
		}
		snap, err = getSnapshot(snaps, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

func getSnapshot(b *bbolt.Bucket, id string) (*storage.Snapshot, error) {
	data := b.Get([]byte(id))
	if data == nil {
		return nil, storage.ErrSnapshotNotFound
	}

	snap := &storage.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// FindSnapshot returns the newest snapshot with the name
func (s *Storage) FindSnapshot(ctx context.Context, name string) (*storage.Snapshot, error) {
	all, err := s.ListSnapshots(ctx, "")
	if err != nil {
		return nil, err
	}

	// Список отсортирован по времени, ищем с конца
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Name == name {
			return all[i], nil
		}
	}

	return nil, storage.ErrSnapshotNotFound
}

// ListSnapshots returns snapshots oldest first; empty component means all
func (s *Storage) ListSnapshots(ctx context.Context, component string) ([]*storage.Snapshot, error) {
	var out []*storage.Snapshot

	err := s.view(func(tx *bbolt.Tx) error {
		snaps, err := bucket(tx, bucketSnapshots)
		if err != nil {
			return err
		}

		// Итерируемся по всем снимкам
		return snaps.ForEach(func(k, v []byte) error {
			snap := &storage.Snapshot{}
			if err := json.Unmarshal(v, snap); err != nil {
				return fmt.Errorf("failed to unmarshal snapshot: %w", err)
			}

			if component == "" || snap.Component == component {
				out = append(out, snap)
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// LatestSnapshot returns the snapshot saved last for the component
func (s *Storage) LatestSnapshot(ctx context.Context, component string) (*storage.Snapshot, error) {
	var snap *storage.Snapshot

	err := s.view(func(tx *bbolt.Tx) error {
		meta, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}
		snaps, err := bucket(tx, bucketSnapshots)
		if err != nil {
			return err
		}

		id := meta.Get(latestKey(component))
		if id == nil {
			return storage.ErrSnapshotNotFound
		}
		snap, err = getSnapshot(snaps, string(id))
		return err
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// DeleteSnapshot removes a snapshot
// Если это был последний снимок компонента, ссылка переходит на самый новый оставшийся
func (s *Storage) DeleteSnapshot(ctx context.Context, id string) error {
	return s.update(func(tx *bbolt.Tx) error {
		snaps, err := bucket(tx, bucketSnapshots)
		if err != nil {
			return err
		}
		meta, err := bucket(tx, bucketMetadata)
		if err != nil {
			return err
		}

		snap, err := getSnapshot(snaps, id)
		if err != nil {
			return err
		}

		if err := snaps.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}

		key := latestKey(snap.Component)
		if string(meta.Get(key)) != id {
			return nil
		}

		next, err := newestSnapshot(snaps, snap.Component)
		if err != nil {
			return err
		}
		if next == nil {
			if err := meta.Delete(key); err != nil {
				return fmt.Errorf("failed to delete latest snapshot: %w", err)
			}
			return nil
		}
		if err := meta.Put(key, []byte(next.ID)); err != nil {
			return fmt.Errorf("failed to save latest snapshot: %w", err)
		}
		return nil
	})
}

// newestSnapshot returns the snapshot of the component with the latest
// CreatedAt, or nil when there is none.
func newestSnapshot(b *bbolt.Bucket, component string) (*storage.Snapshot, error) {
	var newest *storage.Snapshot
	err := b.ForEach(func(k, v []byte) error {
		snap := &storage.Snapshot{}
		if err := json.Unmarshal(v, snap); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		if snap.Component == component && (newest == nil || snap.CreatedAt.After(newest.CreatedAt)) {
			newest = snap
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newest, nil
}
