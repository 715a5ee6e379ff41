package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledgerboard/internal/aggregate"
	"github.com/MrJamesThe3rd/ledgerboard/internal/ledger"
)

const (
	excellentAnnualRevenue = 10_000_000_000
	goodAnnualRevenue      = 5_000_000_000

	msgInsufficientData = "분석을 위한 충분한 데이터가 없습니다."
)

var (
	pct10 = decimal.NewFromInt(10)
	pct15 = decimal.NewFromInt(15)
	pct20 = decimal.NewFromInt(20)
)

// share renders part/whole as a percentage with one decimal.
func share(part, whole int64) string {
	return aggregate.Percent(part, whole).StringFixed(1)
}

func monthlyAnalysis(agg aggregate.Aggregate) []string {
	analysis := make([]string, 0, 3)

	if total := agg.TotalRevenue(); total > 0 {
		top := agg.Revenue.Top()
		analysis = append(analysis,
			fmt.Sprintf("주요 매출처는 %s로 전체 매출의 %s%%를 차지합니다.", top.Name, share(top.Amount, total)))
	}

	if total := agg.TotalExpense(); total > 0 {
		top := agg.Expense.Top()
		analysis = append(analysis,
			fmt.Sprintf("주요 매입 항목은 %s로 전체 매입의 %s%%를 차지합니다.", top.Name, share(top.Amount, total)))
	}

	margin := agg.ProfitMargin()

	switch {
	case margin.GreaterThan(pct20):
		analysis = append(analysis, "수익률이 20%를 초과하여 양호한 수준입니다.")
	case margin.GreaterThan(pct10):
		analysis = append(analysis, "수익률이 10-20% 범위로 적정 수준입니다.")
	default:
		analysis = append(analysis, "수익률이 10% 미만으로 개선이 필요합니다.")
	}

	return analysis
}

// trendAnalysis compares the raw revenue totals of the first and last
// recorded months. An unchanged total reads as a decrease of 0.0%.
func trendAnalysis(monthly ledger.Snapshot) []string {
	if len(monthly) < 2 {
		return []string{msgInsufficientData}
	}

	keys := ledger.SortedKeys(monthly)
	first := monthly[keys[0]].TotalRevenue()
	last := monthly[keys[len(keys)-1]].TotalRevenue()

	trend := "감소"
	if last > first {
		trend = "증가"
	}

	rate := aggregate.Percent(last-first, first).Abs().StringFixed(1)

	return []string{fmt.Sprintf("기간 내 매출이 %s%% %s했습니다.", rate, trend)}
}

// periodComparison walks the revenue names stored in the first month, so a
// source that only appears later is not compared.
func periodComparison(monthly ledger.Snapshot) PeriodComparison {
	out := PeriodComparison{
		RevenueChange: map[string]Change{},
		ExpenseChange: map[string]Change{},
	}

	if len(monthly) < 2 {
		return out
	}

	keys := ledger.SortedKeys(monthly)
	first := monthly[keys[0]]
	last := monthly[keys[len(keys)-1]]

	for name, amount := range first.Revenue {
		out.RevenueChange[name] = change(amount, last.Revenue[name])
	}

	return out
}

// performanceAnalysis leaves margins of 10% and below without a sentence.
func performanceAnalysis(agg aggregate.Aggregate) []string {
	analysis := make([]string, 0, 2)

	switch revenue := agg.TotalRevenue(); {
	case revenue >= excellentAnnualRevenue:
		analysis = append(analysis, "연간 매출 100억원을 달성하여 우수한 성과를 보였습니다.")
	case revenue >= goodAnnualRevenue:
		analysis = append(analysis, "연간 매출 50억원을 달성하여 양호한 성과를 보였습니다.")
	}

	switch margin := agg.ProfitMargin(); {
	case margin.GreaterThan(pct15):
		analysis = append(analysis, "수익률이 15%를 초과하여 매우 양호한 수준입니다.")
	case margin.GreaterThan(pct10):
		analysis = append(analysis, "수익률이 10-15% 범위로 적정 수준을 유지하고 있습니다.")
	}

	return analysis
}

// recommendations flags revenue sources above half of total revenue and
// expense items above 30% of total expense.
func recommendations(agg aggregate.Aggregate) []string {
	out := []string{}

	if total := agg.TotalRevenue(); total > 0 {
		for _, l := range agg.Revenue {
			if l.Amount*2 > total {
				out = append(out, fmt.Sprintf("%s 의존도가 높으므로 매출 다각화를 검토해보시기 바랍니다.", l.Name))
			}
		}
	}

	if total := agg.TotalExpense(); total > 0 {
		for _, l := range agg.Expense {
			if l.Amount*10 > total*3 {
				out = append(out, fmt.Sprintf("%s 비중이 높으므로 비용 절감 방안을 검토해보시기 바랍니다.", l.Name))
			}
		}
	}

	return out
}
