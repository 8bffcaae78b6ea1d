package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/statemod/internal/storage"
)

// RegisterFile adds a file or replaces the entry with the same path.
// Записи старой версии файла удаляются каскадно.
func (s *Storage) RegisterFile(ctx context.Context, file *storage.CatalogFile, records []storage.CatalogRecord) error {
	if file == nil || file.Path == "" {
		return fmt.Errorf("catalog file path cannot be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_files WHERE path = ?`, file.Path); err != nil {
		return fmt.Errorf("failed to delete previous entry: %w", err)
	}

	if file.AddedAt.IsZero() {
		file.AddedAt = time.Now().UTC()
	}
	file.Records = len(records)

	res, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_files (path, component, checksum, revision, records, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		file.Path,
		file.Component,
		file.Checksum,
		file.Revision,
		file.Records,
		file.AddedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert file: %w", err)
	}

	file.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get file id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog_records (file_id, position, record_id, name)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, file.ID, i, r.RecordID, r.Name); err != nil {
			return fmt.Errorf("failed to insert record %q: %w", r.RecordID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const selectFile = `
	SELECT id, path, component, checksum, revision, records, added_at
	FROM catalog_files
`

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(row scanner) (*storage.CatalogFile, error) {
	f := &storage.CatalogFile{}
	var addedAt int64
	if err := row.Scan(&f.ID, &f.Path, &f.Component, &f.Checksum, &f.Revision, &f.Records, &addedAt); err != nil {
		return nil, err
	}
	f.AddedAt = unixToTime(addedAt)
	return f, nil
}

// GetFile returns the entry for path
func (s *Storage) GetFile(ctx context.Context, path string) (*storage.CatalogFile, error) {
	f, err := scanFile(s.db.QueryRowContext(ctx, selectFile+` WHERE path = ?`, path))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return f, nil
}

// ListFiles returns all entries sorted by path
func (s *Storage) ListFiles(ctx context.Context) ([]*storage.CatalogFile, error) {
	rows, err := s.db.QueryContext(ctx, selectFile+` ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var files []*storage.CatalogFile
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating files: %w", err)
	}

	return files, nil
}

// FindRecord returns every registered record with the id, ignoring case
func (s *Storage) FindRecord(ctx context.Context, id string) ([]storage.CatalogHit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.path, f.component, r.record_id, r.name, r.position
		FROM catalog_records r
		JOIN catalog_files f ON f.id = r.file_id
		WHERE r.record_id = ?
		ORDER BY f.path, r.position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var hits []storage.CatalogHit
	for rows.Next() {
		var h storage.CatalogHit
		if err := rows.Scan(&h.Path, &h.Component, &h.RecordID, &h.Name, &h.Position); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		hits = append(hits, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return hits, nil
}

// RemoveFile removes the entry and its records
func (s *Storage) RemoveFile(ctx context.Context, path string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM catalog_files WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrFileNotFound
	}

	return nil
}
