package entry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/response"
	"github.com/MrJamesThe3rd/ledgerboard/internal/importer"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

type Handler struct {
	ledger    *ledger.Service
	registry  *category.Registry
	importSvc *importer.Service
}

func NewHandler(ledgerSvc *ledger.Service, registry *category.Registry, importSvc *importer.Service) *Handler {
	return &Handler{
		ledger:    ledgerSvc,
		registry:  registry,
		importSvc: importSvc,
	}
}

// Routes registers the read routes openly and wraps the write routes in protect.
func (h *Handler) Routes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/{monthKey}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/import", h.importFile)
		r.Put("/{monthKey}", h.save)
		r.Delete("/{monthKey}", h.delete)
	})
}

type entryResponse struct {
	MonthKey     ledger.MonthKey  `json:"month_key"`
	Revenue      map[string]int64 `json:"revenue"`
	Expense      map[string]int64 `json:"expense"`
	RecordedAt   time.Time        `json:"recorded_at"`
	TotalRevenue int64            `json:"total_revenue"`
	TotalExpense int64            `json:"total_expense"`
}

func toResponse(key ledger.MonthKey, e ledger.MonthEntry) entryResponse {
	return entryResponse{
		MonthKey:     key,
		Revenue:      e.Revenue,
		Expense:      e.Expense,
		RecordedAt:   e.RecordedAt,
		TotalRevenue: e.TotalRevenue(),
		TotalExpense: e.TotalExpense(),
	}
}

func toResponseList(snap ledger.Snapshot) []entryResponse {
	keys := ledger.SortedKeys(snap)

	resp := make([]entryResponse, len(keys))
	for i, k := range keys {
		resp[i] = toResponse(k, snap[k])
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		snap ledger.Snapshot
		err  error
	)

	if s := r.URL.Query().Get("year"); s != "" {
		year, convErr := strconv.Atoi(s)
		if convErr != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		snap, err = h.ledger.Year(r.Context(), year)
	} else {
		snap, err = h.ledger.GetAll(r.Context())
	}

	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponseList(snap))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	key, err := ledger.ParseMonthKey(chi.URLParam(r, "monthKey"))
	if err != nil {
		response.Error(w, err)
		return
	}

	e, err := h.ledger.Get(r.Context(), key)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(key, e))
}

// saveRequest carries either a flat revenue map or the grouped form input.
// Grouped input is collected against the current registry, expense included.
type saveRequest struct {
	Revenue        map[string]int64     `json:"revenue"`
	GroupedRevenue *ledger.RevenueInput `json:"grouped_revenue,omitempty"`
	Expense        map[string]int64     `json:"expense"`
}

func (req saveRequest) entry(snap category.Snapshot) ledger.MonthEntry {
	if req.GroupedRevenue != nil {
		return ledger.MonthEntry{
			Revenue: ledger.CollectRevenue(snap, *req.GroupedRevenue),
			Expense: ledger.CollectExpense(snap, req.Expense),
		}
	}

	e := ledger.MonthEntry{Revenue: req.Revenue, Expense: req.Expense}

	if e.Revenue == nil {
		e.Revenue = map[string]int64{}
	}

	if e.Expense == nil {
		e.Expense = map[string]int64{}
	}

	return e
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	key, err := ledger.ParseMonthKey(chi.URLParam(r, "monthKey"))
	if err != nil {
		response.Error(w, err)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.GroupedRevenue != nil && req.Revenue != nil {
		http.Error(w, "revenue and grouped_revenue are mutually exclusive", http.StatusBadRequest)
		return
	}

	saved, err := h.ledger.Save(r.Context(), key, req.entry(h.registry.Snapshot()))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(key, saved))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	key, err := ledger.ParseMonthKey(chi.URLParam(r, "monthKey"))
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.ledger.Delete(r.Context(), key); err != nil {
		response.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type importResponse struct {
	Imported int               `json:"imported"`
	Months   []ledger.MonthKey `json:"months"`
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, response.MaxUploadSize)

	if err := r.ParseMultipartForm(response.MaxUploadSize); err != nil {
		response.Error(w, fmt.Errorf("%w: parse form: %w", ledger.ErrInvalidArgument, err))
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	snap, err := h.importSvc.Import(format, file)
	if err != nil {
		response.Error(w, fmt.Errorf("import: %w", err))
		return
	}

	months, err := h.ledger.Import(r.Context(), snap)
	if err != nil {
		response.Error(w, err)
		return
	}

	if months == nil {
		months = []ledger.MonthKey{}
	}

	response.JSON(w, http.StatusCreated, importResponse{Imported: len(months), Months: months})
}
