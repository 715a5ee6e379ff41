package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=store_mock.go -package=ledger
type Store interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key MonthKey) (MonthEntry, error)
	GetAll(ctx context.Context) (Snapshot, error)
	Put(ctx context.Context, key MonthKey, entry MonthEntry) error
	Delete(ctx context.Context, key MonthKey) error
	// ReplaceAll swaps the whole document for snap.
	ReplaceAll(ctx context.Context, snap Snapshot) error
}

type Service struct {
	store     Store
	backupDir string
	now       func() time.Time
}

type Option func(*Service)

// WithBackupDir sets where Backup writes its files. Defaults to "data".
func WithBackupDir(dir string) Option {
	return func(s *Service) { s.backupDir = dir }
}

// WithClock overrides the time source used for RecordedAt and backup names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		backupDir: "data",
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Get(ctx context.Context, key MonthKey) (MonthEntry, error) {
	return s.store.Get(ctx, key)
}

func (s *Service) GetAll(ctx context.Context) (Snapshot, error) {
	return s.store.GetAll(ctx)
}

// Save overwrites the month wholesale and stamps RecordedAt.
func (s *Service) Save(ctx context.Context, key MonthKey, entry MonthEntry) (MonthEntry, error) {
	if _, err := ParseMonthKey(string(key)); err != nil {
		return MonthEntry{}, err
	}

	if err := entry.Validate(); err != nil {
		return MonthEntry{}, err
	}

	entry = entry.Clone()
	entry.RecordedAt = s.now()

	err := s.store.Put(ctx, key, entry)
	metrics.LedgerWrites.WithLabelValues("save", metrics.Status(err)).Inc()

	if err != nil {
		return MonthEntry{}, fmt.Errorf("save month %s: %w", key, err)
	}

	slog.Info("month entry saved", "month_key", key,
		"total_revenue", entry.TotalRevenue(), "total_expense", entry.TotalExpense())

	return entry, nil
}

func (s *Service) Delete(ctx context.Context, key MonthKey) error {
	err := s.store.Delete(ctx, key)
	metrics.LedgerWrites.WithLabelValues("delete", metrics.Status(err)).Inc()

	if err != nil {
		return fmt.Errorf("delete month %s: %w", key, err)
	}

	slog.Info("month entry deleted", "month_key", key)

	return nil
}

// Year returns the stored months of one calendar year.
func (s *Service) Year(ctx context.Context, year int) (Snapshot, error) {
	return s.Period(ctx, year, 1, 12)
}

// Period returns the stored months between from and to inclusive.
func (s *Service) Period(ctx context.Context, year, from, to int) (Snapshot, error) {
	if from > to {
		return nil, fmt.Errorf("%w: start month %d after end month %d", ErrInvalidArgument, from, to)
	}

	keys := make([]MonthKey, 0, to-from+1)

	for m := from; m <= to; m++ {
		k, err := NewMonthKey(year, m)
		if err != nil {
			return nil, err
		}

		keys = append(keys, k)
	}

	all, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make(Snapshot, len(keys))

	for _, k := range keys {
		if e, ok := all[k]; ok {
			out[k] = e
		}
	}

	return out, nil
}

// Import saves every month of snap wholesale, leaving other months alone.
func (s *Service) Import(ctx context.Context, snap Snapshot) ([]MonthKey, error) {
	keys := SortedKeys(snap)

	for _, k := range keys {
		if _, err := s.Save(ctx, k, snap[k]); err != nil {
			return nil, err
		}
	}

	return keys, nil
}

// Backup writes a timestamped copy of the whole document and returns its path.
func (s *Service) Backup(ctx context.Context) (string, error) {
	snap, err := s.store.GetAll(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", WrapStorage("backup", err)
	}

	name := fmt.Sprintf("rtb_backup_%s.json", s.now().Format("20060102_150405"))
	path := filepath.Join(s.backupDir, name)

	err = writeFile(path, func(w io.Writer) error { return EncodeDocument(w, snap) })
	if err != nil {
		return "", WrapStorage("backup", err)
	}

	slog.Info("ledger backed up", "path", path, "months", len(snap))

	return path, nil
}

// writeFile creates path and fills it with write. A failed write or close
// leaves no file behind.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)

		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}

	return nil
}

// WriteDocument streams the current snapshot in the backup format.
func (s *Service) WriteDocument(ctx context.Context, w io.Writer) error {
	snap, err := s.store.GetAll(ctx)
	if err != nil {
		return err
	}

	return EncodeDocument(w, snap)
}

// Restore replaces the whole store with the document read from r.
func (s *Service) Restore(ctx context.Context, r io.Reader) (int, error) {
	snap, err := DecodeDocument(r)
	if err != nil {
		return 0, err
	}

	err = s.store.ReplaceAll(ctx, snap)
	metrics.LedgerWrites.WithLabelValues("restore", metrics.Status(err)).Inc()

	if err != nil {
		return 0, fmt.Errorf("restore: %w", err)
	}

	slog.Info("ledger restored", "months", len(snap))

	return len(snap), nil
}

// RekeyCategory moves historical amounts stored under oldName to newName on
// one side of the ledger. Registry renames never do this on their own. When a
// month already holds newName the amounts are added together. It returns the
// months that changed.
func (s *Service) RekeyCategory(ctx context.Context, kind category.Kind, oldName, newName string) ([]MonthKey, error) {
	if oldName == "" || newName == "" {
		return nil, fmt.Errorf("%w: empty category name", ErrInvalidArgument)
	}

	if oldName == newName {
		return nil, nil
	}

	all, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var changed []MonthKey

	for _, k := range SortedKeys(all) {
		entry := all[k].Clone()

		side := entry.Revenue
		if kind == category.KindExpense {
			side = entry.Expense
		}

		amount, ok := side[oldName]
		if !ok {
			continue
		}

		delete(side, oldName)
		side[newName] += amount

		err := s.store.Put(ctx, k, entry)
		metrics.LedgerWrites.WithLabelValues("rekey", metrics.Status(err)).Inc()

		if err != nil {
			return changed, fmt.Errorf("rekey month %s: %w", k, err)
		}

		changed = append(changed, k)
	}

	slog.Info("category rekeyed", "kind", kind, "from", oldName, "to", newName, "months", len(changed))

	return changed, nil
}

// SortedKeys returns the keys of snap in calendar order.
func SortedKeys(snap Snapshot) []MonthKey {
	return slices.Sorted(maps.Keys(snap))
}
