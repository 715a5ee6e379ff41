package ledgercsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	enc "github.com/MrJamesThe3rd/ledgerboard/internal/encoding"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

// Parser reads flat ledger rows (year, month, kind, item, amount) and groups
// them into month entries. It auto-detects the layout by matching column
// headers against known profiles, and the delimiter from the header line.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (ledger.Snapshot, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %v", ledger.ErrInvalidArgument, err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("%w: no known ledger header found", ledger.ErrInvalidArgument)
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks ';' when the first line has semicolons but no commas.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(br.Size())

	line, _, _ := bytes.Cut(peek, []byte("\n"))
	if bytes.ContainsRune(line, ';') && !bytes.ContainsRune(line, ',') {
		return ';'
	}

	return ','
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows sums repeated (month, kind, item) rows. Blank rows are skipped;
// any other malformed row fails the whole import.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) (ledger.Snapshot, error) {
	snap := make(ledger.Snapshot)

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		if isBlank(row) {
			continue
		}

		key, err := monthKey(row, cols[p.YearCol], cols[p.MonthCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		kind, ok := p.Kinds[strings.ToLower(cellValue(row, cols[p.KindCol]))]
		if !ok {
			return nil, fmt.Errorf("%w: row %d: unknown kind %q", ledger.ErrInvalidArgument, rowNum, cellValue(row, cols[p.KindCol]))
		}

		item := cellValue(row, cols[p.ItemCol])
		if item == "" {
			return nil, fmt.Errorf("%w: row %d: missing item", ledger.ErrInvalidArgument, rowNum)
		}

		amount, err := parseWon(cellValue(row, cols[p.AmountCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ledger.ErrInvalidArgument, rowNum, err)
		}

		entry, ok := snap[key]
		if !ok {
			entry = ledger.MonthEntry{Revenue: map[string]int64{}, Expense: map[string]int64{}}
		}

		side := entry.Expense
		if kind == category.KindRevenue {
			side = entry.Revenue
		}

		total, err := addWon(side[item], amount)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %s %q: %v", ledger.ErrInvalidArgument, rowNum, kind, item, err)
		}

		side[item] = total

		snap[key] = entry
	}

	return snap, nil
}

func monthKey(row []string, yearIdx, monthIdx int) (ledger.MonthKey, error) {
	year, err := strconv.Atoi(cellValue(row, yearIdx))
	if err != nil {
		return "", fmt.Errorf("%w: year %q", ledger.ErrInvalidArgument, cellValue(row, yearIdx))
	}

	month, err := strconv.Atoi(cellValue(row, monthIdx))
	if err != nil {
		return "", fmt.Errorf("%w: month %q", ledger.ErrInvalidArgument, cellValue(row, monthIdx))
	}

	return ledger.NewMonthKey(year, month)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
