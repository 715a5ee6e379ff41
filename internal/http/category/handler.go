package category

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/response"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
)

type Handler struct {
	registry *category.Registry
	ledger   *ledger.Service
}

func NewHandler(registry *category.Registry, ledgerSvc *ledger.Service) *Handler {
	return &Handler{registry: registry, ledger: ledgerSvc}
}

func (h *Handler) Routes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Get("/", h.list)

	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/revenue/{group}", h.addRevenue)
		r.Patch("/revenue/{group}/{name}", h.renameRevenue)
		r.Delete("/revenue/{group}/{name}", h.removeRevenue)
		r.Post("/expense", h.addExpense)
		r.Patch("/expense/{name}", h.renameExpense)
		r.Delete("/expense/{name}", h.removeExpense)
		r.Post("/rekey", h.rekey)
	})
}

type nameRequest struct {
	Name string `json:"name"`
}

type rekeyRequest struct {
	Kind category.Kind `json:"kind"`
	From string        `json:"from"`
	To   string        `json:"to"`
}

type rekeyResponse struct {
	Months []ledger.MonthKey `json:"months"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.registry.Snapshot())
}

// mutate runs op and answers with the registry as it is afterwards.
func (h *Handler) mutate(w http.ResponseWriter, kind category.Kind, operation string, status int, op func() error) {
	if err := op(); err != nil {
		response.Error(w, err)
		return
	}

	metrics.CategoryChanges.WithLabelValues(string(kind), operation).Inc()
	response.JSON(w, status, h.registry.Snapshot())
}

func decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return "", false
	}

	return req.Name, true
}

func (h *Handler) addRevenue(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}

	group := category.Group(response.URLParam(r, "group"))

	h.mutate(w, category.KindRevenue, "add", http.StatusCreated, func() error {
		return h.registry.AddRevenueSource(group, name)
	})
}

func (h *Handler) renameRevenue(w http.ResponseWriter, r *http.Request) {
	newName, ok := decodeName(w, r)
	if !ok {
		return
	}

	group := category.Group(response.URLParam(r, "group"))
	oldName := response.URLParam(r, "name")

	h.mutate(w, category.KindRevenue, "rename", http.StatusOK, func() error {
		return h.registry.RenameRevenueSource(group, oldName, newName)
	})
}

func (h *Handler) removeRevenue(w http.ResponseWriter, r *http.Request) {
	group := category.Group(response.URLParam(r, "group"))
	name := response.URLParam(r, "name")

	h.mutate(w, category.KindRevenue, "remove", http.StatusOK, func() error {
		return h.registry.RemoveRevenueSource(group, name)
	})
}

func (h *Handler) addExpense(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeName(w, r)
	if !ok {
		return
	}

	h.mutate(w, category.KindExpense, "add", http.StatusCreated, func() error {
		return h.registry.AddExpenseItem(name)
	})
}

func (h *Handler) renameExpense(w http.ResponseWriter, r *http.Request) {
	newName, ok := decodeName(w, r)
	if !ok {
		return
	}

	oldName := response.URLParam(r, "name")

	h.mutate(w, category.KindExpense, "rename", http.StatusOK, func() error {
		return h.registry.RenameExpenseItem(oldName, newName)
	})
}

func (h *Handler) removeExpense(w http.ResponseWriter, r *http.Request) {
	name := response.URLParam(r, "name")

	h.mutate(w, category.KindExpense, "remove", http.StatusOK, func() error {
		return h.registry.RemoveExpenseItem(name)
	})
}

func (h *Handler) rekey(w http.ResponseWriter, r *http.Request) {
	var req rekeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := category.ParseKind(string(req.Kind))
	if err != nil {
		response.Error(w, err)
		return
	}

	months, err := h.ledger.RekeyCategory(r.Context(), kind, req.From, req.To)
	if err != nil {
		response.Error(w, err)
		return
	}

	if months == nil {
		months = []ledger.MonthKey{}
	}

	metrics.CategoryChanges.WithLabelValues(string(kind), "rekey").Inc()
	response.JSON(w, http.StatusOK, rekeyResponse{Months: months})
}
