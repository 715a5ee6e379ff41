package ledger

import (
	"fmt"
	"maps"
	"strconv"
	"time"
)

// MonthKey identifies a calendar month in canonical "YYYY-MM" form.
type MonthKey string

// NewMonthKey validates year and month and returns the canonical key.
func NewMonthKey(year, month int) (MonthKey, error) {
	if year < 1 || year > 9999 {
		return "", fmt.Errorf("%w: year %d out of range", ErrInvalidArgument, year)
	}

	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: month %d out of range", ErrInvalidArgument, month)
	}

	return MonthKey(fmt.Sprintf("%04d-%02d", year, month)), nil
}

// ParseMonthKey accepts only the canonical zero-padded form.
func ParseMonthKey(s string) (MonthKey, error) {
	if len(s) != 7 || s[4] != '-' || !digits(s[:4]) || !digits(s[5:]) {
		return "", fmt.Errorf("%w: month key %q is not YYYY-MM", ErrInvalidArgument, s)
	}

	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[5:])

	return NewMonthKey(year, month)
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// Year and Month return 0 for a key that did not come from NewMonthKey.
func (k MonthKey) Year() int {
	if len(k) != 7 {
		return 0
	}

	y, _ := strconv.Atoi(string(k[:4]))

	return y
}

func (k MonthKey) Month() int {
	if len(k) != 7 {
		return 0
	}

	m, _ := strconv.Atoi(string(k[5:]))

	return m
}

func (k MonthKey) String() string { return string(k) }

// Next returns the following calendar month.
func (k MonthKey) Next() MonthKey {
	next, _ := NewMonthKey(k.Year()+k.Month()/12, k.Month()%12+1)
	return next
}

// Prev returns the preceding calendar month. The result is empty for 0001-01.
func (k MonthKey) Prev() MonthKey {
	if k.Month() == 1 {
		prev, _ := NewMonthKey(k.Year()-1, 12)
		return prev
	}

	prev, _ := NewMonthKey(k.Year(), k.Month()-1)

	return prev
}

// MonthEntry is one month of recorded ledger data. Amounts are whole
// currency units. Saving replaces the entry for its key wholesale.
type MonthEntry struct {
	Revenue    map[string]int64 `json:"revenue"`
	Expense    map[string]int64 `json:"expense"`
	RecordedAt time.Time        `json:"recorded_at"`
}

// TotalRevenue sums every stored revenue amount, registered or not.
func (e MonthEntry) TotalRevenue() int64 {
	return sum(e.Revenue)
}

func (e MonthEntry) TotalExpense() int64 {
	return sum(e.Expense)
}

func (e MonthEntry) IsZero() bool {
	return len(e.Revenue) == 0 && len(e.Expense) == 0 && e.RecordedAt.IsZero()
}

// Clone returns a deep copy so callers cannot alias stored maps.
func (e MonthEntry) Clone() MonthEntry {
	return MonthEntry{
		Revenue:    cloneAmounts(e.Revenue),
		Expense:    cloneAmounts(e.Expense),
		RecordedAt: e.RecordedAt,
	}
}

// Validate rejects negative amounts and blank names.
func (e MonthEntry) Validate() error {
	for name, amount := range e.Revenue {
		if err := validateLine(name, amount); err != nil {
			return fmt.Errorf("revenue: %w", err)
		}
	}

	for name, amount := range e.Expense {
		if err := validateLine(name, amount); err != nil {
			return fmt.Errorf("expense: %w", err)
		}
	}

	return nil
}

func validateLine(name string, amount int64) error {
	if name == "" {
		return fmt.Errorf("%w: empty category name", ErrInvalidArgument)
	}

	if amount < 0 {
		return fmt.Errorf("%w: negative amount %d for %q", ErrInvalidArgument, amount, name)
	}

	return nil
}

func sum(m map[string]int64) int64 {
	var total int64
	for _, v := range m {
		total += v
	}

	return total
}

func cloneAmounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	maps.Copy(out, m)

	return out
}
