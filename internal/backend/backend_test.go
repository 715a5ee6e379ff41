package backend_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/backend"
	"github.com/MrJamesThe3rd/ledgerboard/internal/config"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

func TestOpen(t *testing.T) {
	type testCase struct {
		name    string
		setup   func(cfg *config.Config, dir string)
		wantErr bool
	}

	tests := []testCase{
		{
			name: "File",
			setup: func(cfg *config.Config, dir string) {
				cfg.Storage.Backend = config.BackendFile
				cfg.Storage.DataFile = filepath.Join(dir, "ledger.json")
			},
		},
		{
			name: "SQLite",
			setup: func(cfg *config.Config, dir string) {
				cfg.Storage.Backend = config.BackendSQLite
				cfg.Storage.SQLitePath = filepath.Join(dir, "nested", "ledger.db")
			},
		},
		{
			name: "Unknown",
			setup: func(cfg *config.Config, dir string) {
				cfg.Storage.Backend = "memory"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config.Config
			tt.setup(&cfg, t.TempDir())

			res, err := backend.Open(&cfg)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			t.Cleanup(func() { res.Cleanup() })

			ctx := context.Background()
			entry := ledger.MonthEntry{Revenue: map[string]int64{"A": 1}, Expense: map[string]int64{}}
			require.NoError(t, res.Store.Put(ctx, "2025-01", entry))

			got, err := res.Store.Get(ctx, "2025-01")
			require.NoError(t, err)
			assert.Equal(t, int64(1), got.Revenue["A"])
		})
	}
}
