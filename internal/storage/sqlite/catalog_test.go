package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/statemod/internal/storage"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	// Используем in-memory database для тестов
	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func records(ids ...string) []storage.CatalogRecord {
	out := make([]storage.CatalogRecord, len(ids))
	for i, id := range ids {
		out[i] = storage.CatalogRecord{RecordID: id, Name: "name " + id}
	}
	return out
}

func TestRegisterAndGetFile(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	file := &storage.CatalogFile{
		Path:      "data/test.dds",
		Component: "diversions",
		Checksum:  "abc",
		Revision:  2,
	}
	require.NoError(t, s.RegisterFile(ctx, file, records("D1", "D2")))
	assert.NotZero(t, file.ID)
	assert.Equal(t, 2, file.Records)

	got, err := s.GetFile(ctx, "data/test.dds")
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)
	assert.Equal(t, "diversions", got.Component)
	assert.Equal(t, "abc", got.Checksum)
	assert.Equal(t, 2, got.Revision)
	assert.Equal(t, 2, got.Records)
	assert.Equal(t, file.AddedAt.Unix(), got.AddedAt.Unix())

	_, err = s.GetFile(ctx, "missing.dds")
	assert.ErrorIs(t, err, storage.ErrFileNotFound)

	err = s.RegisterFile(ctx, &storage.CatalogFile{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path cannot be empty")
}

func TestRegisterFile_Replaces(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	require.NoError(t, s.RegisterFile(ctx, &storage.CatalogFile{Path: "a.dds", Component: "diversions", Checksum: "1"}, records("D1", "D2")))
	require.NoError(t, s.RegisterFile(ctx, &storage.CatalogFile{Path: "a.dds", Component: "diversions", Checksum: "2"}, records("D3")))

	files, err := s.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "2", files[0].Checksum)

	// Записи старой версии удалены каскадно
	hits, err := s.FindRecord(ctx, "D1")
	require.NoError(t, err)
	assert.Empty(t, hits)

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_records`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestFindRecord(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	require.NoError(t, s.RegisterFile(ctx, &storage.CatalogFile{Path: "b.dds", Component: "diversions"}, records("X", "D1")))
	require.NoError(t, s.RegisterFile(ctx, &storage.CatalogFile{Path: "a.ddr", Component: "rights"}, records("d1")))

	// Поиск без учета регистра, по пути и позиции
	hits, err := s.FindRecord(ctx, "D1")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a.ddr", hits[0].Path)
	assert.Equal(t, "d1", hits[0].RecordID)
	assert.Equal(t, "rights", hits[0].Component)
	assert.Equal(t, "b.dds", hits[1].Path)
	assert.Equal(t, 1, hits[1].Position)
	assert.Equal(t, "name D1", hits[1].Name)
}

func TestListAndRemoveFiles(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	files, err := s.ListFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	for _, p := range []string{"c.pln", "a.dds", "b.dly"} {
		require.NoError(t, s.RegisterFile(ctx, &storage.CatalogFile{Path: p, Component: "plans"}, records("P1")))
	}

	files, err = s.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, []string{"a.dds", "b.dly", "c.pln"}, []string{files[0].Path, files[1].Path, files[2].Path})

	require.NoError(t, s.RemoveFile(ctx, "b.dly"))
	assert.ErrorIs(t, s.RemoveFile(ctx, "b.dly"), storage.ErrFileNotFound)

	hits, err := s.FindRecord(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestNew_FileCatalog(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := New(ctx, path)
	require.NoError(t, err)

	var mode string
	require.NoError(t, s.db.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "truncate", mode)

	var fk int
	require.NoError(t, s.db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	require.NoError(t, s.RegisterFile(ctx, &storage.CatalogFile{Path: "a.dds", Component: "diversions"}, records("D1")))
	require.NoError(t, s.Close())

	// После закрытия рядом с каталогом нет -wal/-shm файлов
	for _, suffix := range []string{"-wal", "-shm"} {
		_, err := os.Stat(path + suffix)
		assert.True(t, os.IsNotExist(err), suffix)
	}

	// Повторное открытие видит прежние записи
	s, err = New(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	hits, err := s.FindRecord(ctx, "D1")
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestNew_DamagedCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, os.WriteFile(path, []byte("this is a StateMod list file, not a catalog\n"), 0o644))

	_, err := New(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
