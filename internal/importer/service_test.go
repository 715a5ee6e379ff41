package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/importer"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

func TestService_Import(t *testing.T) {
	type testCase struct {
		name    string
		format  importer.Format
		input   string
		wantKey ledger.MonthKey
		wantErr error
	}

	tests := []testCase{
		{
			name:    "CSV",
			format:  importer.FormatCSV,
			input:   "year,month,kind,item,amount\n2025,2,revenue,RENK,10\n",
			wantKey: "2025-02",
		},
		{
			name:    "Backup",
			format:  importer.FormatBackup,
			input:   `{"2025-05":{"revenue":{"RENK":10},"expense":{}}}`,
			wantKey: "2025-05",
		},
		{
			name:    "UnknownFormat",
			format:  importer.Format("xlsx"),
			input:   "",
			wantErr: ledger.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := importer.NewService().Import(tt.format, strings.NewReader(tt.input))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(10), snap[tt.wantKey].Revenue["RENK"])
		})
	}
}
