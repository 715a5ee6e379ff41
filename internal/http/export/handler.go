package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledgerboard/internal/export"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/entries.csv", h.entries)
	r.Get("/summary.csv", h.summary)
	r.Get("/bundle", h.bundle)
}

// parseYear reads the optional year filter; 0 means every year.
func parseYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	s := r.URL.Query().Get("year")
	if s == "" {
		return 0, true
	}

	year, err := strconv.Atoi(s)
	if err != nil || year < 1 {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return 0, false
	}

	return year, true
}

func csvHeaders(w http.ResponseWriter, name string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"%s_%s.csv\"", name, time.Now().Format("20060102")))
}

func (h *Handler) entries(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	csvHeaders(w, "ledger_entries")

	if err := h.svc.WriteEntries(r.Context(), w, year); err != nil {
		slog.Error("failed to write entries csv", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	csvHeaders(w, "ledger_summary")

	if err := h.svc.WriteSummary(r.Context(), w, year); err != nil {
		slog.Error("failed to write summary csv", "error", err)
	}
}

func (h *Handler) bundle(w http.ResponseWriter, r *http.Request) {
	year, ok := parseYear(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", h.svc.BundleName()))

	if err := h.svc.WriteBundle(r.Context(), w, year); err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
