package backend

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/MrJamesThe3rd/ledgerboard/internal/config"
	"github.com/MrJamesThe3rd/ledgerboard/internal/database"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger/store/file"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger/store/sqlstore"
)

// Result is an opened ledger store and the function releasing it.
type Result struct {
	Store   ledger.Store
	Cleanup func() error
}

// Open builds the ledger store selected by STORAGE_BACKEND. Database
// backends are migrated before use.
func Open(cfg *config.Config) (*Result, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		slog.Info("using file backend", "path", cfg.Storage.DataFile)

		return &Result{
			Store:   file.New(cfg.Storage.DataFile),
			Cleanup: func() error { return nil },
		}, nil
	case config.BackendSQLite:
		if err := ensureDir(cfg.Storage.SQLitePath); err != nil {
			return nil, err
		}

		return openSQL(database.DriverSQLite, cfg.Storage.SQLitePath)
	case config.BackendPostgres:
		return openSQL(database.DriverPostgres, cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Storage.Backend)
	}
}

func openSQL(driver, connStr string) (*Result, error) {
	if err := database.Migrate(driver, connStr); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", driver, err)
	}

	db, err := database.New(driver, connStr)
	if err != nil {
		return nil, err
	}

	slog.Info("using database backend", "driver", driver)

	return &Result{
		Store:   sqlstore.New(db),
		Cleanup: db.Close,
	}, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	return nil
}
