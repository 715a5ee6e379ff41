package period

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

// Half selects one of the two six-month halves of a year.
type Half int

const (
	H1 Half = 1
	H2 Half = 2
)

// ParseHalf accepts "h1"/"h2" in any case.
func ParseHalf(s string) (Half, error) {
	switch strings.ToLower(s) {
	case "h1", "1":
		return H1, nil
	case "h2", "2":
		return H2, nil
	}

	return 0, fmt.Errorf("%w: half %q", ledger.ErrInvalidArgument, s)
}

func (h Half) String() string {
	if h == H2 {
		return "h2"
	}

	return "h1"
}

// Period is an inclusive run of calendar months, possibly spanning years.
type Period struct {
	Start ledger.MonthKey
	End   ledger.MonthKey
}

func Month(year, month int) (Period, error) {
	k, err := ledger.NewMonthKey(year, month)
	if err != nil {
		return Period{}, err
	}

	return Period{Start: k, End: k}, nil
}

// OfHalf covers January to June for H1 and July to December for H2.
func OfHalf(year int, h Half) (Period, error) {
	from, to := 1, 6

	switch h {
	case H1:
	case H2:
		from, to = 7, 12
	default:
		return Period{}, fmt.Errorf("%w: half %d", ledger.ErrInvalidArgument, h)
	}

	return between(year, from, year, to)
}

func Year(year int) (Period, error) {
	return between(year, 1, year, 12)
}

// Range covers from through to, both inclusive.
func Range(from, to ledger.MonthKey) (Period, error) {
	if _, err := ledger.ParseMonthKey(string(from)); err != nil {
		return Period{}, err
	}

	if _, err := ledger.ParseMonthKey(string(to)); err != nil {
		return Period{}, err
	}

	if to < from {
		return Period{}, fmt.Errorf("%w: range %s..%s ends before it starts", ledger.ErrInvalidArgument, from, to)
	}

	return Period{Start: from, End: to}, nil
}

func between(fromYear, fromMonth, toYear, toMonth int) (Period, error) {
	start, err := ledger.NewMonthKey(fromYear, fromMonth)
	if err != nil {
		return Period{}, err
	}

	end, err := ledger.NewMonthKey(toYear, toMonth)
	if err != nil {
		return Period{}, err
	}

	return Period{Start: start, End: end}, nil
}

// Keys lists every month of the period in calendar order.
func (p Period) Keys() []ledger.MonthKey {
	var keys []ledger.MonthKey

	for k := p.Start; k != "" && k <= p.End; k = k.Next() {
		keys = append(keys, k)
	}

	return keys
}

// Contains reports whether k falls inside the period.
func (p Period) Contains(k ledger.MonthKey) bool {
	return k >= p.Start && k <= p.End
}

// Label renders the period the way report headers show it.
func (p Period) Label() string {
	if p.Start == p.End {
		return fmt.Sprintf("%d년 %d월", p.Start.Year(), p.Start.Month())
	}

	if p.Start.Year() == p.End.Year() {
		switch {
		case p.Start.Month() == 1 && p.End.Month() == 12:
			return fmt.Sprintf("%d년", p.Start.Year())
		case p.Start.Month() == 1 && p.End.Month() == 6:
			return fmt.Sprintf("%d년 상반기", p.Start.Year())
		case p.Start.Month() == 7 && p.End.Month() == 12:
			return fmt.Sprintf("%d년 하반기", p.Start.Year())
		}
	}

	return fmt.Sprintf("%s ~ %s", p.Start, p.End)
}

// Select returns the recorded months of snap that fall inside the period.
func (p Period) Select(snap ledger.Snapshot) ledger.Snapshot {
	out := make(ledger.Snapshot)

	for k, e := range snap {
		if p.Contains(k) {
			out[k] = e
		}
	}

	return out
}

// Select returns the subset of snap stored under keys. Keys with no entry
// are left out rather than zero-filled.
func Select(snap ledger.Snapshot, keys []ledger.MonthKey) ledger.Snapshot {
	out := make(ledger.Snapshot, len(keys))

	for _, k := range keys {
		if e, ok := snap[k]; ok {
			out[k] = e
		}
	}

	return out
}
