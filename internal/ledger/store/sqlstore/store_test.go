package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/database"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger/store/sqlstore"
)

func newStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	require.NoError(t, database.Migrate(database.DriverSQLite, path))

	db, err := database.New(database.DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlstore.New(db)
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	recorded := time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)
	entry := ledger.MonthEntry{
		Revenue:    map[string]int64{"A": 1000000, "B": 2000000},
		Expense:    map[string]int64{"Rent": 500000},
		RecordedAt: recorded,
	}

	require.NoError(t, store.Put(ctx, "2025-03", entry))

	got, err := store.Get(ctx, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, entry.Revenue, got.Revenue)
	assert.Equal(t, entry.Expense, got.Expense)
	assert.True(t, recorded.Equal(got.RecordedAt))

	// Save replaces the month wholesale.
	require.NoError(t, store.Put(ctx, "2025-03", ledger.MonthEntry{Revenue: map[string]int64{"C": 1}}))

	got, err = store.Get(ctx, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"C": 1}, got.Revenue)
	assert.Empty(t, got.Expense)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	_, err := store.Get(ctx, "2024-01")
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "2024-01"), ledger.ErrNotFound)
}

func TestStore_GetAllReplaceAll(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Put(ctx, "2024-01", ledger.MonthEntry{Revenue: map[string]int64{"A": 1}}))
	require.NoError(t, store.Put(ctx, "2024-02", ledger.MonthEntry{Revenue: map[string]int64{"A": 2}}))

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, store.ReplaceAll(ctx, ledger.Snapshot{
		"2023-12": {Revenue: map[string]int64{"Z": 9}, Expense: map[string]int64{}},
	}))

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(9), all["2023-12"].Revenue["Z"])

	require.NoError(t, store.Delete(ctx, "2023-12"))

	all, err = store.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
