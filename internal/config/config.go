package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	App struct {
		Name       string `envconfig:"APP_NAME" default:"Ledgerboard"`
		Port       int    `envconfig:"PORT" default:"8080"`
		Company    string `envconfig:"COMPANY" default:"RTB"`
		Department string `envconfig:"DEPARTMENT" default:"회계팀"`
		LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat  string `envconfig:"LOG_FORMAT" default:"text"`
	}

	Storage struct {
		Backend    string `envconfig:"STORAGE_BACKEND" default:"file"`
		DataFile   string `envconfig:"DATA_FILE" default:"data/accounting_data.json"`
		BackupDir  string `envconfig:"BACKUP_DIR" default:"data"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"data/ledgerboard.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"ledgerboard"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Username  string        `envconfig:"ADMIN_USERNAME" default:"admin"`
		Password  string        `envconfig:"ADMIN_PASSWORD"`
		JWTSecret string        `envconfig:"JWT_SECRET"`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"12h"`
	}

	// Empty lists fall back to the built-in defaults of the category package.
	Categories struct {
		TaxInvoiced []string `envconfig:"CATEGORIES_TAX_INVOICED"`
		ZeroRated   []string `envconfig:"CATEGORIES_ZERO_RATED"`
		Expense     []string `envconfig:"CATEGORIES_EXPENSE"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.App.Port < 1 || c.App.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.App.Port))
	}

	if levels := []string{"debug", "info", "warn", "error"}; !slices.Contains(levels, strings.ToLower(c.App.LogLevel)) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", c.App.LogLevel, levels))
	}

	if formats := []string{"text", "json"}; !slices.Contains(formats, strings.ToLower(c.App.LogFormat)) {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be one of %v", c.App.LogFormat, formats))
	}

	backends := []string{BackendFile, BackendPostgres, BackendSQLite}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.DataFile == "" {
			problems = append(problems, "data file cannot be empty when using file backend")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		}
	case BackendPostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			problems = append(problems, "database host and name are required when using postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.Storage.Backend, backends))
	}

	if c.Storage.BackupDir == "" {
		problems = append(problems, "backup directory cannot be empty")
	}

	if c.Server.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid server timeout %v: must be positive", c.Server.Timeout))
	}

	if c.Auth.Password != "" && c.Auth.JWTSecret == "" {
		problems = append(problems, "JWT secret is required when an admin password is set")
	}

	if c.Auth.TokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid token TTL %v: must be positive", c.Auth.TokenTTL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
