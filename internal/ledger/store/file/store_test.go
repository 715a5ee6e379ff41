package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger/store/file"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "ledger.json")
	store := file.New(path)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	entry := ledger.MonthEntry{
		Revenue: map[string]int64{"A": 1000000, "B": 2000000},
		Expense: map[string]int64{"Rent": 500000},
	}

	require.NoError(t, store.Put(ctx, "2025-03", entry))

	got, err := store.Get(ctx, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, entry.Revenue, got.Revenue)
	assert.Equal(t, entry.Expense, got.Expense)

	// A second instance sees the same document.
	again, err := file.New(path).GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 1)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := file.New(filepath.Join(t.TempDir(), "ledger.json"))

	_, err := store.Get(ctx, "2024-01")
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	err = store.Delete(ctx, "2024-01")
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := file.New(filepath.Join(t.TempDir(), "ledger.json"))

	require.NoError(t, store.Put(ctx, "2024-01", ledger.MonthEntry{}))
	require.NoError(t, store.Put(ctx, "2024-02", ledger.MonthEntry{}))
	require.NoError(t, store.Delete(ctx, "2024-01"))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, ledger.MonthKey("2024-02"))
}

func TestStore_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := file.New(filepath.Join(t.TempDir(), "ledger.json"))

	require.NoError(t, store.Put(ctx, "2024-01", ledger.MonthEntry{}))
	require.NoError(t, store.ReplaceAll(ctx, ledger.Snapshot{
		"2023-05": {Revenue: map[string]int64{"X": 1}, Expense: map[string]int64{}},
	}))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, int64(1), all["2023-05"].Revenue["X"])
}

func TestStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := file.New(path).GetAll(context.Background())

	var storageErr *ledger.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "read", storageErr.Op)
}
