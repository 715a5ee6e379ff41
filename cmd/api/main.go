package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/ledgerboard/internal/app"
	"github.com/MrJamesThe3rd/ledgerboard/internal/config"
	ledgerHttp "github.com/MrJamesThe3rd/ledgerboard/internal/http"
	authHandler "github.com/MrJamesThe3rd/ledgerboard/internal/http/auth"
	backupHandler "github.com/MrJamesThe3rd/ledgerboard/internal/http/backup"
	categoryHandler "github.com/MrJamesThe3rd/ledgerboard/internal/http/category"
	entryHandler "github.com/MrJamesThe3rd/ledgerboard/internal/http/entry"
	exportHandler "github.com/MrJamesThe3rd/ledgerboard/internal/http/export"
	reportHandler "github.com/MrJamesThe3rd/ledgerboard/internal/http/report"
	"github.com/MrJamesThe3rd/ledgerboard/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(os.Stdout, cfg.App.LogLevel, cfg.App.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if cfg.Auth.Password == "" {
		slog.Warn("ADMIN_PASSWORD is not set, write routes are disabled")
	}

	router := ledgerHttp.New(ledgerHttp.Handlers{
		Auth:       authHandler.NewHandler(a.Auth),
		Entries:    entryHandler.NewHandler(a.Ledger, a.Registry, a.Import),
		Categories: categoryHandler.NewHandler(a.Registry, a.Ledger),
		Reports:    reportHandler.NewHandler(a.Reports),
		Backup:     backupHandler.NewHandler(a.Ledger),
		Export:     exportHandler.NewHandler(a.Export),
	}, a.Auth.Require, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting server", "name", cfg.App.Name, "port", srv.Addr, "backend", cfg.Storage.Backend)

	if err := serve(ctx, srv, 10*time.Second); err != nil {
		slog.Error("server failed", "error", err)
		return
	}

	slog.Info("server stopped")
}

// serve runs srv until it fails or ctx is cancelled, then shuts it down
// within grace.
func serve(ctx context.Context, srv *http.Server, grace time.Duration) error {
	serveErr := make(chan error, 1)

	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shut down server: %w", err)
	}

	return nil
}
