package importer

import (
	"fmt"
	"io"

	enc "github.com/MrJamesThe3rd/ledgerboard/internal/encoding"
	"github.com/MrJamesThe3rd/ledgerboard/internal/importer/ledgercsv"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

type Service struct {
	csvImporter    Importer
	backupImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter:    ledgercsv.NewParser(),
		backupImporter: backupParser{},
	}
}

// Import parses r into month entries without persisting anything.
func (s *Service) Import(format Format, r io.Reader) (ledger.Snapshot, error) {
	var importer Importer

	switch format {
	case FormatCSV:
		importer = s.csvImporter
	case FormatBackup:
		importer = s.backupImporter
	default:
		return nil, fmt.Errorf("%w: unknown import format: %s", ledger.ErrInvalidArgument, format)
	}

	return importer.Parse(r)
}

// backupParser reads a backup document, including ones saved by
// spreadsheet tools in a legacy encoding.
type backupParser struct{}

func (backupParser) Parse(r io.Reader) (ledger.Snapshot, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	return ledger.DecodeDocument(utf8r)
}
