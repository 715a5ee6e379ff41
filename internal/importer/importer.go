package importer

import (
	"io"

	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatBackup Format = "json"
)

type Importer interface {
	Parse(r io.Reader) (ledger.Snapshot, error)
}
