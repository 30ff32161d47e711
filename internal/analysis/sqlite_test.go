package analysis

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	ctx := context.Background()

	var mode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	created := time.Date(2026, 3, 1, 9, 30, 0, 123, time.UTC)
	require.NoError(t, s.Put(ctx, Entry{Key: "k", CreatedAt: created, Value: []byte(`{"name":"a"}`)}))
	require.NoError(t, s.Put(ctx, Entry{Key: "k", CreatedAt: created, Value: []byte(`{"name":"b"}`)}))

	e, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, created.Equal(e.CreatedAt))
	assert.JSONEq(t, `{"name":"b"}`, string(e.Value), "put upserts")

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStorePrune(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Put(ctx, Entry{Key: "old", CreatedAt: base, Value: []byte("{}")}))
	require.NoError(t, s.Put(ctx, Entry{Key: "new", CreatedAt: base.Add(time.Hour), Value: []byte("{}")}))

	n, err := s.Prune(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, ok, _ := s.Get(ctx, "new")
	assert.True(t, ok)
}

func TestCacheFallsBackToStore(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	ctx := context.Background()

	writer, err := NewCache(4, time.Hour, s, nil)
	require.NoError(t, err)
	require.NoError(t, writer.Put(ctx, "k", &ProjectAnalysis{Name: "persisted", Depth: Deep}))

	// A fresh cache sharing the store sees the entry after a process restart.
	reader, err := NewCache(4, time.Hour, s, nil)
	require.NoError(t, err)
	got, ok := reader.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "persisted", got.Name)
	assert.True(t, got.Deep())
	assert.Equal(t, 1, reader.Len())
}
