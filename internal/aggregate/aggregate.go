package aggregate

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

// Line is one category and its summed amount.
type Line struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Lines keeps registry order so every view lists categories the same way.
type Lines []Line

func (ls Lines) Total() int64 {
	var total int64
	for _, l := range ls {
		total += l.Amount
	}

	return total
}

// Get returns 0 for a name that is not listed.
func (ls Lines) Get(name string) int64 {
	for _, l := range ls {
		if l.Name == name {
			return l.Amount
		}
	}

	return 0
}

func (ls Lines) Map() map[string]int64 {
	out := make(map[string]int64, len(ls))
	for _, l := range ls {
		out[l.Name] = l.Amount
	}

	return out
}

// Top returns the largest line. Ties go to the earliest line; an empty or
// all-zero list has no top and yields "".
func (ls Lines) Top() Line {
	var top Line

	for _, l := range ls {
		if l.Amount > top.Amount {
			top = l
		}
	}

	return top
}

// SumByCategory adds every entry's amount for each name, in the given order.
// A name absent from an entry counts as zero.
func SumByCategory(entries ledger.Snapshot, names []string, pick func(ledger.MonthEntry) map[string]int64) Lines {
	out := make(Lines, len(names))

	for i, name := range names {
		out[i].Name = name
	}

	for _, e := range entries {
		amounts := pick(e)
		for i, name := range names {
			out[i].Amount += amounts[name]
		}
	}

	return out
}

func revenueOf(e ledger.MonthEntry) map[string]int64 { return e.Revenue }

func expenseOf(e ledger.MonthEntry) map[string]int64 { return e.Expense }

// Aggregate is the sum of zero or more month entries over the registry's
// category names at aggregation time. Groups holds the revenue subtotal of
// each registry group.
type Aggregate struct {
	Months  []ledger.MonthKey        `json:"months"`
	Revenue Lines                    `json:"revenue"`
	Expense Lines                    `json:"expense"`
	Groups  map[category.Group]int64 `json:"groups"`
}

// Of sums entries over every name in snap. Stored names the registry no
// longer knows are left out.
func Of(entries ledger.Snapshot, snap category.Snapshot) Aggregate {
	revenue := SumByCategory(entries, snap.RevenueNames(), revenueOf)

	return Aggregate{
		Months:  ledger.SortedKeys(entries),
		Revenue: revenue,
		Expense: SumByCategory(entries, snap.ExpenseNames(), expenseOf),
		Groups:  ledger.GroupSubtotals(snap, revenue.Map()),
	}
}

// Add sums two aggregates built from the same registry snapshot category by
// category. Names only one side lists are appended after the shared ones.
func Add(a, b Aggregate) Aggregate {
	months := slices.Concat(a.Months, b.Months)
	slices.Sort(months)

	groups := make(map[category.Group]int64, len(a.Groups))
	maps.Copy(groups, a.Groups)

	for g, v := range b.Groups {
		groups[g] += v
	}

	return Aggregate{
		Months:  slices.Compact(months),
		Revenue: addLines(a.Revenue, b.Revenue),
		Expense: addLines(a.Expense, b.Expense),
		Groups:  groups,
	}
}

func addLines(a, b Lines) Lines {
	out := slices.Clone(a)
	if out == nil {
		out = Lines{}
	}

	for _, l := range b {
		i := slices.IndexFunc(out, func(o Line) bool { return o.Name == l.Name })
		if i < 0 {
			out = append(out, l)
			continue
		}

		out[i].Amount += l.Amount
	}

	return out
}

func (a Aggregate) TotalRevenue() int64 { return a.Revenue.Total() }

func (a Aggregate) TotalExpense() int64 { return a.Expense.Total() }

func (a Aggregate) NetProfit() int64 { return a.TotalRevenue() - a.TotalExpense() }

// ProfitMargin is net profit as a percentage of revenue, 0 when there is no
// revenue.
func (a Aggregate) ProfitMargin() decimal.Decimal {
	return Percent(a.NetProfit(), a.TotalRevenue())
}

// IsEmpty reports whether no month contributed to the aggregate.
func (a Aggregate) IsEmpty() bool {
	return len(a.Months) == 0
}

// Percent returns part/whole*100, or 0 when whole is not positive.
func Percent(part, whole int64) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).DivRound(decimal.NewFromInt(whole), 8)
}
