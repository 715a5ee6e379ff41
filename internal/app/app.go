package app

import (
	"fmt"

	"github.com/MrJamesThe3rd/ledgerboard/internal/auth"
	"github.com/MrJamesThe3rd/ledgerboard/internal/backend"
	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/config"
	"github.com/MrJamesThe3rd/ledgerboard/internal/export"
	"github.com/MrJamesThe3rd/ledgerboard/internal/importer"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/report"
)

// App holds the services shared by the API server and the terminal dashboard.
type App struct {
	Registry *category.Registry
	Ledger   *ledger.Service
	Reports  *report.Service
	Export   *export.Service
	Import   *importer.Service
	Auth     *auth.Service

	cleanup func() error
}

func New(cfg *config.Config) (*App, error) {
	res, err := backend.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	registry := NewRegistry(cfg)
	composer := report.NewComposer(
		report.WithCompany(cfg.App.Company),
		report.WithDepartment(cfg.App.Department),
	)
	reports := report.NewService(res.Store, registry, composer)

	return &App{
		Registry: registry,
		Ledger:   ledger.NewService(res.Store, ledger.WithBackupDir(cfg.Storage.BackupDir)),
		Reports:  reports,
		Export:   export.NewService(res.Store, reports),
		Import:   importer.NewService(),
		Auth:     auth.NewService(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		cleanup:  res.Cleanup,
	}, nil
}

// NewRegistry seeds the registry from configuration, using the built-in
// lists for any list left empty.
func NewRegistry(cfg *config.Config) *category.Registry {
	return category.NewRegistry(
		orDefault(cfg.Categories.TaxInvoiced, category.DefaultTaxInvoiced),
		orDefault(cfg.Categories.ZeroRated, category.DefaultZeroRated),
		orDefault(cfg.Categories.Expense, category.DefaultExpense),
	)
}

func orDefault(list, def []string) []string {
	if len(list) == 0 {
		return def
	}

	return list
}

func (a *App) Close() error {
	return a.cleanup()
}
