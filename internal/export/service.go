package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerboard/internal/aggregate"
	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/report"
)

var (
	entriesHeader = []string{"year", "month", "kind", "item", "amount"}
	summaryHeader = []string{"year", "month", "total_revenue", "total_expense", "net_profit", "profit_margin"}
)

type Reader interface {
	GetAll(ctx context.Context) (ledger.Snapshot, error)
}

type AnnualReporter interface {
	Annual(ctx context.Context, year int) (report.Annual, error)
}

// Service serializes the ledger into flat CSV files and a ZIP bundle that
// also carries the rendered annual reports.
type Service struct {
	reader  Reader
	reports AnnualReporter
	now     func() time.Time
}

func NewService(reader Reader, reports AnnualReporter) *Service {
	return &Service{
		reader:  reader,
		reports: reports,
		now:     time.Now,
	}
}

// load returns the recorded months of year, or every month when year is 0.
func (s *Service) load(ctx context.Context, year int) (ledger.Snapshot, error) {
	snap, err := s.reader.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	if year == 0 {
		return snap, nil
	}

	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d", ledger.ErrInvalidArgument, year)
	}

	out := make(ledger.Snapshot)

	for k, e := range snap {
		if k.Year() == year {
			out[k] = e
		}
	}

	return out, nil
}

// WriteEntries writes one row per stored amount, in month order and then by
// kind and item name. The output is readable by the CSV importer.
func (s *Service) WriteEntries(ctx context.Context, w io.Writer, year int) error {
	snap, err := s.load(ctx, year)
	if err != nil {
		return err
	}

	return writeEntries(w, snap)
}

func writeEntries(w io.Writer, snap ledger.Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(entriesHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, key := range ledger.SortedKeys(snap) {
		entry := snap[key]

		for _, side := range []struct {
			kind    category.Kind
			amounts map[string]int64
		}{
			{category.KindRevenue, entry.Revenue},
			{category.KindExpense, entry.Expense},
		} {
			for _, item := range slices.Sorted(maps.Keys(side.amounts)) {
				row := []string{
					strconv.Itoa(key.Year()),
					strconv.Itoa(key.Month()),
					string(side.kind),
					item,
					strconv.FormatInt(side.amounts[item], 10),
				}

				if err := cw.Write(row); err != nil {
					return fmt.Errorf("write row %s: %w", key, err)
				}
			}
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteSummary writes one row of raw monthly totals per recorded month.
func (s *Service) WriteSummary(ctx context.Context, w io.Writer, year int) error {
	snap, err := s.load(ctx, year)
	if err != nil {
		return err
	}

	return writeSummary(w, snap)
}

func writeSummary(w io.Writer, snap ledger.Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, key := range ledger.SortedKeys(snap) {
		entry := snap[key]
		revenue := entry.TotalRevenue()
		net := revenue - entry.TotalExpense()

		row := []string{
			strconv.Itoa(key.Year()),
			strconv.Itoa(key.Month()),
			strconv.FormatInt(revenue, 10),
			strconv.FormatInt(entry.TotalExpense(), 10),
			strconv.FormatInt(net, 10),
			aggregate.Percent(net, revenue).StringFixed(1),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", key, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// BundleName returns a unique file name for a bundle created now.
func (s *Service) BundleName() string {
	return fmt.Sprintf("ledger_export_%s_%s.zip", s.now().Format("20060102"), uuid.NewString()[:8])
}

// WriteBundle writes a ZIP archive holding entries.csv, summary.csv and one
// annual_report_YYYY.txt per recorded year.
func (s *Service) WriteBundle(ctx context.Context, w io.Writer, year int) error {
	snap, err := s.load(ctx, year)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)

	if err := addFile(zw, "entries.csv", func(w io.Writer) error { return writeEntries(w, snap) }); err != nil {
		return err
	}

	if err := addFile(zw, "summary.csv", func(w io.Writer) error { return writeSummary(w, snap) }); err != nil {
		return err
	}

	for _, y := range years(snap) {
		rep, err := s.reports.Annual(ctx, y)
		if errors.Is(err, report.ErrNoData) {
			continue
		}

		if err != nil {
			return fmt.Errorf("annual report %d: %w", y, err)
		}

		name := fmt.Sprintf("annual_report_%d.txt", y)
		if err := addFile(zw, name, func(w io.Writer) error {
			_, err := io.WriteString(w, report.Text(rep))
			return err
		}); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}

	return nil
}

func addFile(zw *zip.Writer, name string, write func(io.Writer) error) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return nil
}

func years(snap ledger.Snapshot) []int {
	var out []int

	for _, k := range ledger.SortedKeys(snap) {
		if len(out) == 0 || out[len(out)-1] != k.Year() {
			out = append(out, k.Year())
		}
	}

	return out
}
