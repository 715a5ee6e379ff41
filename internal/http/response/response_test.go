package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/http/response"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/report"
)

func TestStatus(t *testing.T) {
	type testCase struct {
		name string
		err  error
		want int
	}

	tests := []testCase{
		{name: "InvalidArgument", err: fmt.Errorf("month: %w", ledger.ErrInvalidArgument), want: http.StatusBadRequest},
		{name: "UnknownGroup", err: category.ErrUnknownGroup, want: http.StatusBadRequest},
		{name: "InvalidName", err: category.ErrInvalidName, want: http.StatusBadRequest},
		{name: "MonthNotFound", err: ledger.ErrNotFound, want: http.StatusNotFound},
		{name: "CategoryNotFound", err: category.ErrNotFound, want: http.StatusNotFound},
		{name: "NoData", err: report.ErrNoData, want: http.StatusNotFound},
		{name: "Duplicate", err: category.ErrDuplicateName, want: http.StatusConflict},
		{name: "TooLarge", err: fmt.Errorf("%w: decode: %w", ledger.ErrInvalidArgument, &http.MaxBytesError{Limit: 1}), want: http.StatusRequestEntityTooLarge},
		{name: "Storage", err: ledger.WrapStorage("read", errors.New("disk")), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, response.Status(tt.err))
		})
	}
}

func TestError_HidesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, ledger.WrapStorage("read", errors.New("/secret/path")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "/secret/path")
}

func TestIsMultipart(t *testing.T) {
	type testCase struct {
		name        string
		contentType string
		want        bool
	}

	tests := []testCase{
		{name: "FormData", contentType: "multipart/form-data; boundary=x", want: true},
		{name: "UpperCase", contentType: "Multipart/Form-Data; boundary=x", want: true},
		{name: "URLEncoded", contentType: "application/x-www-form-urlencoded", want: false},
		{name: "JSON", contentType: "application/json", want: false},
		{name: "Missing", contentType: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			assert.Equal(t, tt.want, response.IsMultipart(req))
		})
	}
}
