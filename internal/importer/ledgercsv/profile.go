package ledgercsv

import "github.com/MrJamesThe3rd/ledgerboard/internal/category"

// Profile describes the header and kind labels of one CSV layout.
// Adding a new layout is just adding a new Profile to the profiles slice.
type Profile struct {
	Name      string
	YearCol   string
	MonthCol  string
	KindCol   string
	ItemCol   string
	AmountCol string
	Kinds     map[string]category.Kind
}

func (p Profile) requiredCols() []string {
	return []string{p.YearCol, p.MonthCol, p.KindCol, p.ItemCol, p.AmountCol}
}

// profiles is the ordered list of layouts tried during auto-detection.
var profiles = []Profile{
	{
		Name:      "export",
		YearCol:   "year",
		MonthCol:  "month",
		KindCol:   "kind",
		ItemCol:   "item",
		AmountCol: "amount",
		Kinds: map[string]category.Kind{
			"revenue": category.KindRevenue,
			"expense": category.KindExpense,
		},
	},
	{
		Name:      "korean",
		YearCol:   "연도",
		MonthCol:  "월",
		KindCol:   "구분",
		ItemCol:   "항목",
		AmountCol: "금액",
		Kinds: map[string]category.Kind{
			"매출": category.KindRevenue,
			"매입": category.KindExpense,
		},
	},
}
