package report_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerboard/internal/aggregate"
	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
	"github.com/MrJamesThe3rd/ledgerboard/internal/report"
)

var (
	fixedNow = time.Date(2025, 4, 2, 14, 5, 0, 0, time.UTC)
	fixedID  = uuid.MustParse("7b0c4b0e-3f5a-4a43-9d9b-1f6f0a1e2c3d")
)

func newComposer() *report.Composer {
	return report.NewComposer(
		report.WithClock(func() time.Time { return fixedNow }),
		report.WithIDGenerator(func() uuid.UUID { return fixedID }),
	)
}

func categories() category.Snapshot {
	return category.Snapshot{
		TaxInvoiced: []string{"A", "B", "C"},
		ZeroRated:   []string{"X", "Y"},
		Expense:     []string{"Rent", "급여"},
	}
}

func TestComposer_Monthly(t *testing.T) {
	entry := ledger.MonthEntry{
		Revenue: map[string]int64{"A": 1000000, "B": 2000000},
		Expense: map[string]int64{"Rent": 500000},
	}

	got, err := newComposer().Monthly(2025, 3, entry, categories())
	require.NoError(t, err)

	assert.Equal(t, report.TypeMonthly, got.Type)
	assert.Equal(t, "2025년 3월", got.Period)
	assert.Equal(t, report.DefaultCompany, got.Company)
	assert.Equal(t, report.DefaultDepartment, got.Department)
	assert.Equal(t, fixedID, got.ID)
	assert.Equal(t, fixedNow, got.GeneratedAt)
	assert.Equal(t, "2025-04-15", got.DueDate)

	s := got.Summary
	assert.Equal(t, int64(3000000), s.TotalRevenue)
	assert.Equal(t, int64(500000), s.TotalExpense)
	assert.Equal(t, int64(2500000), s.NetProfit)
	assert.InDelta(t, 83.3, s.ProfitMargin, 0.05)
	assert.Equal(t, "B", s.TopRevenueSource)
	assert.Equal(t, "Rent", s.TopExpenseItem)
	assert.Equal(t, int64(3000000), s.RevenueByGroup[category.GroupTaxInvoiced])

	assert.Equal(t, []string{
		"주요 매출처는 B로 전체 매출의 66.7%를 차지합니다.",
		"주요 매입 항목은 Rent로 전체 매입의 100.0%를 차지합니다.",
		"수익률이 20%를 초과하여 양호한 수준입니다.",
	}, got.Analysis)
}

func TestComposer_Monthly_Bands(t *testing.T) {
	type testCase struct {
		name    string
		revenue int64
		expense int64
		want    string
	}

	tests := []testCase{
		{name: "Adequate", revenue: 1000, expense: 850, want: "수익률이 10-20% 범위로 적정 수준입니다."},
		{name: "ExactlyTwenty", revenue: 1000, expense: 800, want: "수익률이 10-20% 범위로 적정 수준입니다."},
		{name: "Low", revenue: 1000, expense: 950, want: "수익률이 10% 미만으로 개선이 필요합니다."},
		{name: "Negative", revenue: 1000, expense: 2000, want: "수익률이 10% 미만으로 개선이 필요합니다."},
		{name: "NoRevenue", revenue: 0, expense: 10, want: "수익률이 10% 미만으로 개선이 필요합니다."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ledger.MonthEntry{
				Revenue: map[string]int64{"A": tt.revenue},
				Expense: map[string]int64{"Rent": tt.expense},
			}

			got, err := newComposer().Monthly(2025, 1, entry, categories())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Analysis[len(got.Analysis)-1])
		})
	}
}

func TestComposer_Monthly_Empty(t *testing.T) {
	got, err := newComposer().Monthly(2025, 12, ledger.MonthEntry{}, categories())
	require.NoError(t, err)

	assert.Empty(t, got.Summary.TopRevenueSource)
	assert.Empty(t, got.Summary.TopExpenseItem)
	assert.Zero(t, got.Summary.ProfitMargin)
	assert.Equal(t, "2026-01-15", got.DueDate)
	assert.Equal(t, []string{"수익률이 10% 미만으로 개선이 필요합니다."}, got.Analysis)
}

func TestComposer_Monthly_InvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		_, err := newComposer().Monthly(2025, month, ledger.MonthEntry{}, categories())
		assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
	}
}

func TestComposer_Monthly_TopTieIsStable(t *testing.T) {
	entry := ledger.MonthEntry{Revenue: map[string]int64{"A": 100, "B": 300, "C": 300}}

	for range 10 {
		got, err := newComposer().Monthly(2025, 1, entry, categories())
		require.NoError(t, err)
		assert.Equal(t, "B", got.Summary.TopRevenueSource)
	}
}

func TestComposer_SemiAnnual(t *testing.T) {
	monthly := ledger.Snapshot{
		"2025-01": {Revenue: map[string]int64{"A": 400000, "B": 600000}},
		"2025-06": {Revenue: map[string]int64{"A": 900000, "B": 600000, "C": 5}},
	}

	agg := aggregate.Of(monthly, categories())
	got := newComposer().SemiAnnual(2025, "상반기", agg, monthly)

	assert.Equal(t, report.TypeSemiAnnual, got.Type)
	assert.Equal(t, "2025년 상반기", got.Period)
	assert.Equal(t, int64(2500005), got.Summary.TotalRevenue)
	assert.Equal(t, []string{"기간 내 매출이 50.0% 증가했습니다."}, got.TrendAnalysis)

	assert.Equal(t, map[string]report.Change{
		"A": {Amount: 500000, Rate: 125},
		"B": {Amount: 0, Rate: 0},
	}, got.PeriodComparison.RevenueChange)
}

func TestComposer_SemiAnnual_Trend(t *testing.T) {
	type testCase struct {
		name    string
		monthly ledger.Snapshot
		want    string
	}

	tests := []testCase{
		{
			name:    "SingleMonth",
			monthly: ledger.Snapshot{"2025-01": {Revenue: map[string]int64{"A": 1}}},
			want:    "분석을 위한 충분한 데이터가 없습니다.",
		},
		{
			name: "Decrease",
			monthly: ledger.Snapshot{
				"2025-07": {Revenue: map[string]int64{"A": 2000}},
				"2025-09": {Revenue: map[string]int64{"A": 500}},
			},
			want: "기간 내 매출이 75.0% 감소했습니다.",
		},
		{
			name: "FlatReadsAsDecrease",
			monthly: ledger.Snapshot{
				"2025-07": {Revenue: map[string]int64{"A": 10}},
				"2025-12": {Revenue: map[string]int64{"A": 10}},
			},
			want: "기간 내 매출이 0.0% 감소했습니다.",
		},
		{
			name: "ZeroFirstMonth",
			monthly: ledger.Snapshot{
				"2025-01": {Revenue: map[string]int64{}},
				"2025-02": {Revenue: map[string]int64{"A": 10}},
			},
			want: "기간 내 매출이 0.0% 증가했습니다.",
		},
		{
			name: "UnregisteredNamesStillCount",
			monthly: ledger.Snapshot{
				"2025-01": {Revenue: map[string]int64{"Retired": 100}},
				"2025-02": {Revenue: map[string]int64{"A": 150}},
			},
			want: "기간 내 매출이 50.0% 증가했습니다.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newComposer().SemiAnnual(2025, "하반기", aggregate.Of(tt.monthly, categories()), tt.monthly)
			assert.Equal(t, []string{tt.want}, got.TrendAnalysis)
		})
	}
}

func TestComposer_SemiAnnual_ComparisonNeedsTwoMonths(t *testing.T) {
	monthly := ledger.Snapshot{"2025-01": {Revenue: map[string]int64{"A": 1}}}

	got := newComposer().SemiAnnual(2025, "상반기", aggregate.Of(monthly, categories()), monthly)
	assert.Empty(t, got.PeriodComparison.RevenueChange)
	assert.NotNil(t, got.PeriodComparison.RevenueChange)
}

func TestComposer_SemiAnnual_ComparisonJSON(t *testing.T) {
	monthly := ledger.Snapshot{
		"2025-01": {Revenue: map[string]int64{"A": 100}, Expense: map[string]int64{"Rent": 10}},
		"2025-06": {Revenue: map[string]int64{"A": 150}, Expense: map[string]int64{"Rent": 30}},
	}

	got := newComposer().SemiAnnual(2025, "상반기", aggregate.Of(monthly, categories()), monthly)

	data, err := json.Marshal(got.PeriodComparison)
	require.NoError(t, err)
	assert.JSONEq(t, `{"revenue_change":{"A":{"amount":50,"rate":50}},"expense_change":{}}`, string(data))
}

func TestComposer_Annual(t *testing.T) {
	snap := categories()
	first := aggregate.Of(ledger.Snapshot{
		"2025-02": {Revenue: map[string]int64{"X": 3_000_000_000}, Expense: map[string]int64{"Rent": 1_000_000_000}},
	}, snap)
	second := aggregate.Of(ledger.Snapshot{
		"2025-08": {Revenue: map[string]int64{"X": 3_000_000_000, "Y": 4_000_000_000}, Expense: map[string]int64{"급여": 1_000_000_000}},
	}, snap)

	got := newComposer().Annual(2025, aggregate.Add(first, second), first, second)

	assert.Equal(t, report.TypeAnnual, got.Type)
	assert.Equal(t, "2025년", got.Period)
	assert.Equal(t, int64(10_000_000_000), got.Summary.TotalRevenue)

	require.NotNil(t, got.Summary.HalfComparison)
	assert.Equal(t, int64(3_000_000_000), got.Summary.FirstHalfRevenue)
	assert.Equal(t, int64(7_000_000_000), got.Summary.SecondHalfRevenue)
	assert.InDelta(t, 133.33, got.Summary.RevenueGrowth, 0.01)
	assert.Zero(t, got.Summary.ExpenseChange)

	assert.Equal(t, []string{
		"연간 매출 100억원을 달성하여 우수한 성과를 보였습니다.",
		"수익률이 15%를 초과하여 매우 양호한 수준입니다.",
	}, got.PerformanceAnalysis)

	assert.Equal(t, []string{
		"X 의존도가 높으므로 매출 다각화를 검토해보시기 바랍니다.",
		"Rent 비중이 높으므로 비용 절감 방안을 검토해보시기 바랍니다.",
		"급여 비중이 높으므로 비용 절감 방안을 검토해보시기 바랍니다.",
	}, got.Recommendations)
}

func TestComposer_Annual_OneHalfMissing(t *testing.T) {
	snap := categories()
	first := aggregate.Of(ledger.Snapshot{"2025-03": {Revenue: map[string]int64{"A": 100}}}, snap)
	second := aggregate.Of(ledger.Snapshot{}, snap)

	got := newComposer().Annual(2025, aggregate.Add(first, second), first, second)
	assert.Nil(t, got.Summary.HalfComparison)
}

func TestComposer_Annual_PerformanceGaps(t *testing.T) {
	type testCase struct {
		name    string
		revenue int64
		expense int64
		want    []string
	}

	tests := []testCase{
		{
			name:    "GoodRevenueAdequateMargin",
			revenue: 5_000_000_000,
			expense: 4_400_000_000,
			want: []string{
				"연간 매출 50억원을 달성하여 양호한 성과를 보였습니다.",
				"수익률이 10-15% 범위로 적정 수준을 유지하고 있습니다.",
			},
		},
		{
			name:    "SmallRevenueThinMargin",
			revenue: 1_000_000,
			expense: 950_000,
			want:    []string{},
		},
		{
			name:    "NoRevenue",
			revenue: 0,
			expense: 0,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := aggregate.Of(ledger.Snapshot{
				"2025-01": {Revenue: map[string]int64{"A": tt.revenue}, Expense: map[string]int64{"Rent": tt.expense}},
			}, categories())

			got := newComposer().Annual(2025, agg, agg, aggregate.Aggregate{})
			assert.Equal(t, tt.want, got.PerformanceAnalysis)
		})
	}
}

func TestComposer_Annual_Recommendations(t *testing.T) {
	type testCase struct {
		name    string
		revenue map[string]int64
		expense map[string]int64
		want    []string
	}

	tests := []testCase{
		{
			name:    "DiversifyAboveHalf",
			revenue: map[string]int64{"X": 600, "Y": 400},
			want:    []string{"X 의존도가 높으므로 매출 다각화를 검토해보시기 바랍니다."},
		},
		{
			name:    "ExactlyHalfIsFine",
			revenue: map[string]int64{"X": 500, "Y": 500},
			want:    []string{},
		},
		{
			name:    "CostConcentrationAboveThirty",
			expense: map[string]int64{"Rent": 31, "급여": 69},
			want: []string{
				"Rent 비중이 높으므로 비용 절감 방안을 검토해보시기 바랍니다.",
				"급여 비중이 높으므로 비용 절감 방안을 검토해보시기 바랍니다.",
			},
		},
		{
			name:    "ExactlyThirtyIsFine",
			expense: map[string]int64{"Rent": 30, "급여": 30, category.Other: 40},
			want:    []string{"기타 비중이 높으므로 비용 절감 방안을 검토해보시기 바랍니다."},
		},
		{
			name: "NothingRecorded",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := aggregate.Of(ledger.Snapshot{
				"2025-01": {Revenue: tt.revenue, Expense: tt.expense},
			}, categories())

			got := newComposer().Annual(2025, agg, agg, agg)
			assert.Equal(t, tt.want, got.Recommendations)
		})
	}
}

func TestMonthOverMonth(t *testing.T) {
	prev := ledger.MonthEntry{
		Revenue: map[string]int64{"A": 100},
		Expense: map[string]int64{"Rent": 50},
	}
	cur := ledger.MonthEntry{
		Revenue: map[string]int64{"A": 150, "X": 10},
		Expense: map[string]int64{"Rent": 50},
	}

	got := report.MonthOverMonth("2024-12", prev, cur, categories())

	assert.Equal(t, ledger.MonthKey("2024-12"), got.Previous)
	require.NotEmpty(t, got.Revenue)
	assert.Equal(t, "A", got.Revenue[0].Name)
	assert.Equal(t, int64(50), got.Revenue[0].Amount)
	assert.InDelta(t, 50.0, got.Revenue[0].Rate, 0.0001)

	assert.Equal(t, int64(50), got.NetProfit.Previous)
	assert.Equal(t, int64(110), got.NetProfit.Current)
	assert.InDelta(t, 120.0, got.NetProfit.Rate, 0.0001)
}
