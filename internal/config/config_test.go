package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATEGORIES_EXPENSE", "급여,세금")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "RTB", cfg.App.Company)
	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"급여", "세금"}, cfg.Categories.Expense)
	assert.Empty(t, cfg.Categories.TaxInvoiced)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}

	tests := []testCase{
		{
			name:   "Valid",
			mutate: func(c *config.Config) {},
		},
		{
			name:    "PortOutOfRange",
			mutate:  func(c *config.Config) { c.App.Port = 70000 },
			wantErr: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:    "UnknownBackend",
			mutate:  func(c *config.Config) { c.Storage.Backend = "sheets" },
			wantErr: "invalid storage backend 'sheets'",
		},
		{
			name:   "SQLiteWithoutPath",
			mutate: func(c *config.Config) {
				c.Storage.Backend = config.BackendSQLite
				c.Storage.SQLitePath = ""
			},
			wantErr: "SQLite database path cannot be empty",
		},
		{
			name:    "PasswordWithoutSecret",
			mutate:  func(c *config.Config) { c.Auth.Password = "pw" },
			wantErr: "JWT secret is required",
		},
		{
			name:    "BadLogLevel",
			mutate:  func(c *config.Config) { c.App.LogLevel = "loud" },
			wantErr: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_CollectsAll(t *testing.T) {
	cfg := valid()
	cfg.App.Port = 0
	cfg.Server.Timeout = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 0")
	assert.Contains(t, err.Error(), "invalid server timeout")
}

func valid() *config.Config {
	var cfg config.Config
	cfg.App.Port = 8080
	cfg.App.LogLevel = "info"
	cfg.App.LogFormat = "json"
	cfg.Storage.Backend = config.BackendFile
	cfg.Storage.DataFile = "data/accounting_data.json"
	cfg.Storage.BackupDir = "data"
	cfg.Server.Timeout = 30 * time.Second
	cfg.Auth.TokenTTL = time.Hour

	return &cfg
}
