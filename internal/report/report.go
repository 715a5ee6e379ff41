package report

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/ledgerboard/internal/aggregate"
	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

// ErrNoData is returned by Service when the requested period has no
// recorded months. The builders themselves never fail on empty input.
var ErrNoData = errors.New("no data recorded for period")

type Type string

const (
	TypeMonthly    Type = "monthly"
	TypeSemiAnnual Type = "semi_annual"
	TypeAnnual     Type = "annual"
	TypeRange      Type = "range"
)

// Header carries the fields every report shares.
type Header struct {
	ID          uuid.UUID `json:"id"`
	Type        Type      `json:"type"`
	Period      string    `json:"period"`
	Company     string    `json:"company"`
	Department  string    `json:"department"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Summary holds the derived totals of one aggregate.
type Summary struct {
	TotalRevenue     int64                    `json:"total_revenue"`
	TotalExpense     int64                    `json:"total_expense"`
	NetProfit        int64                    `json:"net_profit"`
	ProfitMargin     float64                  `json:"profit_margin"`
	TopRevenueSource string                   `json:"top_revenue_source"`
	TopExpenseItem   string                   `json:"top_expense_item"`
	RevenueByGroup   map[category.Group]int64 `json:"revenue_by_group"`
	Revenue          aggregate.Lines          `json:"revenue"`
	Expense          aggregate.Lines          `json:"expense"`
}

// Change is the movement of one amount between two points in time.
type Change struct {
	Amount int64   `json:"amount"`
	Rate   float64 `json:"rate"`
}

// LineChange is a Change for a named category, with both endpoints.
type LineChange struct {
	Name     string `json:"name"`
	Previous int64  `json:"previous"`
	Current  int64  `json:"current"`
	Change
}

// MonthComparison compares a month with the calendar month before it.
type MonthComparison struct {
	Previous  ledger.MonthKey `json:"previous"`
	Revenue   []LineChange    `json:"revenue"`
	Expense   []LineChange    `json:"expense"`
	NetProfit LineChange      `json:"net_profit"`
}

type Monthly struct {
	Header
	Month      ledger.MonthKey   `json:"month"`
	DueDate    string            `json:"due_date"`
	Data       ledger.MonthEntry `json:"data"`
	Summary    Summary           `json:"summary"`
	Analysis   []string          `json:"analysis"`
	Comparison *MonthComparison  `json:"comparison,omitempty"`
}

// PeriodComparison is the first-to-last month movement within a period,
// keyed by revenue source. ExpenseChange is always present and always empty;
// expense items are not compared.
type PeriodComparison struct {
	RevenueChange map[string]Change `json:"revenue_change"`
	ExpenseChange map[string]Change `json:"expense_change"`
}

type SemiAnnual struct {
	Header
	Aggregate        aggregate.Aggregate `json:"aggregated_data"`
	MonthlyData      ledger.Snapshot     `json:"monthly_data"`
	Summary          Summary             `json:"summary"`
	TrendAnalysis    []string            `json:"trend_analysis"`
	PeriodComparison PeriodComparison    `json:"comparison"`
}

// HalfComparison sets the two halves of a year side by side.
type HalfComparison struct {
	FirstHalfRevenue  int64   `json:"first_half_revenue"`
	SecondHalfRevenue int64   `json:"second_half_revenue"`
	FirstHalfExpense  int64   `json:"first_half_expense"`
	SecondHalfExpense int64   `json:"second_half_expense"`
	RevenueGrowth     float64 `json:"revenue_growth"`
	ExpenseChange     float64 `json:"expense_change"`
}

// AnnualSummary only carries the half comparison when both halves hold data.
type AnnualSummary struct {
	Summary
	*HalfComparison
}

type Annual struct {
	Header
	Aggregate           aggregate.Aggregate `json:"annual_data"`
	FirstHalf           aggregate.Aggregate `json:"first_half"`
	SecondHalf          aggregate.Aggregate `json:"second_half"`
	Summary             AnnualSummary       `json:"summary"`
	PerformanceAnalysis []string            `json:"performance_analysis"`
	Recommendations     []string            `json:"recommendations"`
}

// Range is a plain aggregate over an arbitrary run of months.
type Range struct {
	Header
	From      ledger.MonthKey     `json:"from"`
	To        ledger.MonthKey     `json:"to"`
	Aggregate aggregate.Aggregate `json:"aggregated_data"`
	Summary   Summary             `json:"summary"`
}
