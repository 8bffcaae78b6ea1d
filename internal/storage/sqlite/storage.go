package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/statemod/internal/storage"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// memoryPath opens a private in-memory catalog.
const memoryPath = ":memory:"

// catalogPragmas apply to every catalog connection. Each CLI command opens
// the catalog, registers or looks up a few files and exits, so the journal
// is truncated instead of leaving -wal/-shm files next to the data sets.
var catalogPragmas = []string{
	// catalog_records удаляются каскадом вместе с catalog_files
	"PRAGMA foreign_keys = ON;",
	// две команды над одним рабочим каталогом ждут друг друга
	"PRAGMA busy_timeout = 5000;",
}

// filePragmas apply only to file-backed catalogs.
var filePragmas = []string{
	"PRAGMA journal_mode = TRUNCATE;",
	"PRAGMA synchronous = FULL;",
}

// Storage is the SQLite file catalog of a workspace.
type Storage struct {
	db *sql.DB
}

var _ storage.CatalogStorage = (*Storage)(nil)

// New opens the catalog at dbPath, creating and migrating it when needed.
// ":memory:" gives a catalog that lives as long as the Storage.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", dbPath, err)
	}

	// Один писатель; для ":memory:" это еще и одна общая база
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := configure(ctx, db, dbPath); err != nil {
		db.Close()
		return nil, err
	}

	s := &Storage{db: db}

	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate catalog %s: %w", dbPath, err)
	}

	return s, nil
}

func configure(ctx context.Context, db *sql.DB, dbPath string) error {
	pragmas := catalogPragmas
	if dbPath != memoryPath {
		pragmas = append(append([]string(nil), pragmas...), filePragmas...)
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to configure catalog %s (%s): %w", dbPath, pragma, err)
		}
	}

	if dbPath == memoryPath {
		return nil
	}

	// Каталог копируют вместе с наборами данных, поэтому проверяем файл до миграций
	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA quick_check;").Scan(&result); err != nil {
		return fmt.Errorf("failed to check catalog %s: %w", dbPath, err)
	}
	if result != "ok" {
		return fmt.Errorf("catalog %s is damaged: %s", dbPath, result)
	}

	return nil
}

// Close closes the catalog.
func (s *Storage) Close() error {
	return s.db.Close()
}

// runMigrations выполняет миграции из embedded FS
func (s *Storage) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

func unixToTime(timestamp int64) time.Time {
	return time.Unix(timestamp, 0).UTC()
}
