package report

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledgerboard/internal/http/response"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/period"
	"github.com/MrJamesThe3rd/ledgerboard/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/monthly/{year}/{month}", h.monthly)
	r.Get("/semi-annual/{year}/{half}", h.semiAnnual)
	r.Get("/annual/{year}", h.annual)
	r.Get("/range", h.rangeReport)
}

// write renders the report as JSON, or as plain text with ?format=text.
func write(w http.ResponseWriter, r *http.Request, doc report.Document) {
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(report.Text(doc)))

		return
	}

	response.JSON(w, http.StatusOK, doc)
}

func intParam(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil {
		http.Error(w, "invalid "+key, http.StatusBadRequest)
		return 0, false
	}

	return v, true
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	year, ok := intParam(w, r, "year")
	if !ok {
		return
	}

	month, ok := intParam(w, r, "month")
	if !ok {
		return
	}

	rep, err := h.svc.Monthly(r.Context(), year, month)
	if err != nil {
		response.Error(w, err)
		return
	}

	write(w, r, rep)
}

func (h *Handler) semiAnnual(w http.ResponseWriter, r *http.Request) {
	year, ok := intParam(w, r, "year")
	if !ok {
		return
	}

	half, err := period.ParseHalf(chi.URLParam(r, "half"))
	if err != nil {
		response.Error(w, err)
		return
	}

	rep, err := h.svc.SemiAnnual(r.Context(), year, half)
	if err != nil {
		response.Error(w, err)
		return
	}

	write(w, r, rep)
}

func (h *Handler) annual(w http.ResponseWriter, r *http.Request) {
	year, ok := intParam(w, r, "year")
	if !ok {
		return
	}

	rep, err := h.svc.Annual(r.Context(), year)
	if err != nil {
		response.Error(w, err)
		return
	}

	write(w, r, rep)
}

func (h *Handler) rangeReport(w http.ResponseWriter, r *http.Request) {
	from := ledger.MonthKey(r.URL.Query().Get("from"))
	to := ledger.MonthKey(r.URL.Query().Get("to"))

	rep, err := h.svc.Range(r.Context(), from, to)
	if err != nil {
		response.Error(w, err)
		return
	}

	write(w, r, rep)
}
