package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/report"
)

// MaxUploadSize caps restore and import request bodies.
const MaxUploadSize = 10 << 20

// IsMultipart reports whether the request body is a multipart form.
func IsMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/")
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status Status picks for it. Internal errors are
// logged and hidden from the client.
func Error(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

func Status(err error) int {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ledger.ErrInvalidArgument),
		errors.Is(err, category.ErrUnknownGroup),
		errors.Is(err, category.ErrUnknownKind),
		errors.Is(err, category.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, report.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, category.ErrDuplicateName):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// URLParam returns the unescaped route parameter, so names like
// "SUNJIN%20%26%20FMD" arrive as typed.
func URLParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)

	v, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}

	return v
}
