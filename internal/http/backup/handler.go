package backup

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	enc "github.com/MrJamesThe3rd/ledgerboard/internal/encoding"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/response"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Get("/backup/download", h.download)

	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/backup", h.backup)
		r.Post("/restore", h.restore)
	})
}

type backupResponse struct {
	Path string `json:"path"`
}

type restoreResponse struct {
	Restored int `json:"restored"`
}

func (h *Handler) backup(w http.ResponseWriter, r *http.Request) {
	path, err := h.svc.Backup(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, backupResponse{Path: path})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"accounting_data_%s.json\"", time.Now().Format("20060102")))

	if err := h.svc.WriteDocument(r.Context(), w); err != nil {
		slog.Error("failed to write backup document", "error", err)
	}
}

// restore accepts the document either as the "file" field of a multipart
// form or as the raw request body, whatever its content type.
func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, response.MaxUploadSize)
	body := io.Reader(r.Body)

	if response.IsMultipart(r) {
		if err := r.ParseMultipartForm(response.MaxUploadSize); err != nil {
			response.Error(w, fmt.Errorf("%w: parse form: %w", ledger.ErrInvalidArgument, err))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file field is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		body = file
	}

	utf8r, err := enc.NewUTF8Reader(body)
	if err != nil {
		http.Error(w, "failed to read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	n, err := h.svc.Restore(r.Context(), utf8r)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, restoreResponse{Restored: n})
}
