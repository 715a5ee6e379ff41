package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/ledgerboard/internal/aggregate"
	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/metrics"
	"github.com/MrJamesThe3rd/ledgerboard/internal/period"
)

// Reader is the read side of the ledger store.
type Reader interface {
	GetAll(ctx context.Context) (ledger.Snapshot, error)
}

// Categories hands out point-in-time registry snapshots.
type Categories interface {
	Snapshot() category.Snapshot
}

// Service loads one ledger snapshot and one registry snapshot per report so
// every aggregate inside a report sees the same data.
type Service struct {
	reader     Reader
	categories Categories
	composer   *Composer
}

func NewService(reader Reader, categories Categories, composer *Composer) *Service {
	return &Service{
		reader:     reader,
		categories: categories,
		composer:   composer,
	}
}

func (s *Service) load(ctx context.Context) (ledger.Snapshot, category.Snapshot, error) {
	entries, err := s.reader.GetAll(ctx)
	if err != nil {
		return nil, category.Snapshot{}, fmt.Errorf("load ledger: %w", err)
	}

	return entries, s.categories.Snapshot(), nil
}

func record(t Type, err error) {
	metrics.ReportsGenerated.WithLabelValues(string(t), metrics.Status(err)).Inc()

	if err != nil && !errors.Is(err, ErrNoData) && !errors.Is(err, ledger.ErrInvalidArgument) {
		slog.Error("failed to build report", "type", t, "error", err)
	}
}

// Monthly builds the report of one month and, when the previous calendar
// month is recorded too, attaches the month-over-month comparison.
func (s *Service) Monthly(ctx context.Context, year, month int) (rep Monthly, err error) {
	defer func() { record(TypeMonthly, err) }()

	key, err := ledger.NewMonthKey(year, month)
	if err != nil {
		return Monthly{}, err
	}

	entries, snap, err := s.load(ctx)
	if err != nil {
		return Monthly{}, err
	}

	entry, ok := entries[key]
	if !ok {
		return Monthly{}, fmt.Errorf("%w: %s", ErrNoData, key)
	}

	rep, err = s.composer.Monthly(year, month, entry, snap)
	if err != nil {
		return Monthly{}, err
	}

	prevKey := key.Prev()
	if prev, ok := entries[prevKey]; ok {
		rep.Comparison = MonthOverMonth(prevKey, prev, entry, snap)
	}

	return rep, nil
}

func (s *Service) SemiAnnual(ctx context.Context, year int, half period.Half) (rep SemiAnnual, err error) {
	defer func() { record(TypeSemiAnnual, err) }()

	p, err := period.OfHalf(year, half)
	if err != nil {
		return SemiAnnual{}, err
	}

	entries, snap, err := s.load(ctx)
	if err != nil {
		return SemiAnnual{}, err
	}

	monthly := p.Select(entries)
	if len(monthly) == 0 {
		return SemiAnnual{}, fmt.Errorf("%w: %s", ErrNoData, p.Label())
	}

	return s.composer.SemiAnnual(year, HalfLabel(half), aggregate.Of(monthly, snap), monthly), nil
}

// HalfLabel is the display name of a half.
func HalfLabel(h period.Half) string {
	if h == period.H2 {
		return "하반기"
	}

	return "상반기"
}

func (s *Service) Annual(ctx context.Context, year int) (rep Annual, err error) {
	defer func() { record(TypeAnnual, err) }()

	whole, err := period.Year(year)
	if err != nil {
		return Annual{}, err
	}

	entries, snap, err := s.load(ctx)
	if err != nil {
		return Annual{}, err
	}

	if len(whole.Select(entries)) == 0 {
		return Annual{}, fmt.Errorf("%w: %s", ErrNoData, whole.Label())
	}

	h1, _ := period.OfHalf(year, period.H1)
	h2, _ := period.OfHalf(year, period.H2)

	first := aggregate.Of(h1.Select(entries), snap)
	second := aggregate.Of(h2.Select(entries), snap)

	return s.composer.Annual(year, aggregate.Add(first, second), first, second), nil
}

// Range aggregates every recorded month between from and to, across years.
func (s *Service) Range(ctx context.Context, from, to ledger.MonthKey) (rep Range, err error) {
	defer func() { record(TypeRange, err) }()

	p, err := period.Range(from, to)
	if err != nil {
		return Range{}, err
	}

	entries, snap, err := s.load(ctx)
	if err != nil {
		return Range{}, err
	}

	selected := p.Select(entries)
	if len(selected) == 0 {
		return Range{}, fmt.Errorf("%w: %s", ErrNoData, p.Label())
	}

	return s.composer.Range(p, aggregate.Of(selected, snap)), nil
}
