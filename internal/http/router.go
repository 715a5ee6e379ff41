package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/MrJamesThe3rd/ledgerboard/internal/http/auth"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/backup"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/entry"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/export"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/report"
)

type Handlers struct {
	Auth       *authhttp.Handler
	Entries    *entry.Handler
	Categories *category.Handler
	Reports    *report.Handler
	Backup     *backup.Handler
	Export     *export.Handler
}

// New builds the API router. protect guards every route that writes to the
// ledger or the category registry.
func New(h Handlers, protect func(http.Handler) http.Handler, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", h.Auth.Routes)

		r.Route("/entries", func(r chi.Router) {
			h.Entries.Routes(r, protect)
		})

		r.Route("/categories", func(r chi.Router) {
			h.Categories.Routes(r, protect)
		})

		r.Route("/reports", h.Reports.Routes)

		r.Group(func(r chi.Router) {
			h.Backup.Routes(r, protect)
		})

		r.Route("/export", h.Export.Routes)
	})

	return router
}
