package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerboard/internal/aggregate"
	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/period"
)

const (
	DefaultCompany    = "RTB"
	DefaultDepartment = "회계팀"
)

// Composer builds reports from aggregates. Apart from the header it is a
// pure function of its inputs.
type Composer struct {
	company    string
	department string
	now        func() time.Time
	newID      func() uuid.UUID
}

type Option func(*Composer)

func WithCompany(name string) Option {
	return func(c *Composer) { c.company = name }
}

func WithDepartment(name string) Option {
	return func(c *Composer) { c.department = name }
}

func WithClock(now func() time.Time) Option {
	return func(c *Composer) { c.now = now }
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(c *Composer) { c.newID = newID }
}

func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		company:    DefaultCompany,
		department: DefaultDepartment,
		now:        time.Now,
		newID:      uuid.New,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Composer) header(t Type, label string) Header {
	return Header{
		ID:          c.newID(),
		Type:        t,
		Period:      label,
		Company:     c.company,
		Department:  c.department,
		GeneratedAt: c.now(),
	}
}

func summarize(agg aggregate.Aggregate) Summary {
	return Summary{
		TotalRevenue:     agg.TotalRevenue(),
		TotalExpense:     agg.TotalExpense(),
		NetProfit:        agg.NetProfit(),
		ProfitMargin:     agg.ProfitMargin().InexactFloat64(),
		TopRevenueSource: agg.Revenue.Top().Name,
		TopExpenseItem:   agg.Expense.Top().Name,
		RevenueByGroup:   agg.Groups,
		Revenue:          agg.Revenue,
		Expense:          agg.Expense,
	}
}

// Monthly builds a single-month report. month must be 1 to 12.
func (c *Composer) Monthly(year, month int, entry ledger.MonthEntry, snap category.Snapshot) (Monthly, error) {
	key, err := ledger.NewMonthKey(year, month)
	if err != nil {
		return Monthly{}, err
	}

	p, _ := period.Month(year, month)
	agg := aggregate.Of(ledger.Snapshot{key: entry}, snap)

	return Monthly{
		Header:   c.header(TypeMonthly, p.Label()),
		Month:    key,
		DueDate:  DueDate(key).Format(time.DateOnly),
		Data:     entry,
		Summary:  summarize(agg),
		Analysis: monthlyAnalysis(agg),
	}, nil
}

// DueDate is the 15th of the month after key.
func DueDate(key ledger.MonthKey) time.Time {
	next := key.Next()
	return time.Date(next.Year(), time.Month(next.Month()), 15, 0, 0, 0, 0, time.UTC)
}

// SemiAnnual builds a half-year report from its aggregate and the months that
// produced it. label is the display name of the half, such as "상반기".
func (c *Composer) SemiAnnual(year int, label string, agg aggregate.Aggregate, monthly ledger.Snapshot) SemiAnnual {
	return SemiAnnual{
		Header:           c.header(TypeSemiAnnual, fmt.Sprintf("%d년 %s", year, label)),
		Aggregate:        agg,
		MonthlyData:      monthly,
		Summary:          summarize(agg),
		TrendAnalysis:    trendAnalysis(monthly),
		PeriodComparison: periodComparison(monthly),
	}
}

// Annual builds a year report. The half comparison is only filled in when
// both halves hold at least one month.
func (c *Composer) Annual(year int, annual, firstHalf, secondHalf aggregate.Aggregate) Annual {
	summary := AnnualSummary{Summary: summarize(annual)}

	if !firstHalf.IsEmpty() && !secondHalf.IsEmpty() {
		summary.HalfComparison = compareHalves(firstHalf, secondHalf)
	}

	return Annual{
		Header:              c.header(TypeAnnual, fmt.Sprintf("%d년", year)),
		Aggregate:           annual,
		FirstHalf:           firstHalf,
		SecondHalf:          secondHalf,
		Summary:             summary,
		PerformanceAnalysis: performanceAnalysis(annual),
		Recommendations:     recommendations(annual),
	}
}

// Range wraps the aggregate of an arbitrary period.
func (c *Composer) Range(p period.Period, agg aggregate.Aggregate) Range {
	return Range{
		Header:    c.header(TypeRange, p.Label()),
		From:      p.Start,
		To:        p.End,
		Aggregate: agg,
		Summary:   summarize(agg),
	}
}

func compareHalves(first, second aggregate.Aggregate) *HalfComparison {
	fr, sr := first.TotalRevenue(), second.TotalRevenue()
	fe, se := first.TotalExpense(), second.TotalExpense()

	return &HalfComparison{
		FirstHalfRevenue:  fr,
		SecondHalfRevenue: sr,
		FirstHalfExpense:  fe,
		SecondHalfExpense: se,
		RevenueGrowth:     aggregate.Percent(sr-fr, fr).InexactFloat64(),
		ExpenseChange:     aggregate.Percent(se-fe, fe).InexactFloat64(),
	}
}

// MonthOverMonth compares current with the month before it over the
// registry's names, plus net profit.
func MonthOverMonth(prevKey ledger.MonthKey, prev, current ledger.MonthEntry, snap category.Snapshot) *MonthComparison {
	before := aggregate.Of(ledger.Snapshot{prevKey: prev}, snap)
	after := aggregate.Of(ledger.Snapshot{prevKey.Next(): current}, snap)

	return &MonthComparison{
		Previous:  prevKey,
		Revenue:   lineChanges(before.Revenue, after.Revenue),
		Expense:   lineChanges(before.Expense, after.Expense),
		NetProfit: lineChange("", before.NetProfit(), after.NetProfit()),
	}
}

func lineChanges(before, after aggregate.Lines) []LineChange {
	out := make([]LineChange, len(after))

	for i, l := range after {
		out[i] = lineChange(l.Name, before.Get(l.Name), l.Amount)
	}

	return out
}

func lineChange(name string, prev, cur int64) LineChange {
	return LineChange{
		Name:     name,
		Previous: prev,
		Current:  cur,
		Change:   change(prev, cur),
	}
}

func change(from, to int64) Change {
	return Change{
		Amount: to - from,
		Rate:   aggregate.Percent(to-from, from).InexactFloat64(),
	}
}
