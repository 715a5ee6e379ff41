package ledger

import (
	"github.com/MrJamesThe3rd/ledgerboard/internal/category"
)

// SharedSource is invoiced under both revenue groups; its amounts from each
// group are added together instead of the later group replacing the earlier.
const SharedSource = "Mitsui"

// RevenueInput is revenue as typed on the entry form, one map per group.
type RevenueInput struct {
	TaxInvoiced map[string]int64 `json:"tax_invoiced"`
	ZeroRated   map[string]int64 `json:"zero_rated"`
	Other       int64            `json:"other"`
}

// CollectRevenue flattens grouped input into the single revenue map stored
// for a month. Only names registered in the snapshot's groups are read, in
// registry order. A name present in both groups keeps the zero-rated value,
// except SharedSource which is summed.
func CollectRevenue(snap category.Snapshot, in RevenueInput) map[string]int64 {
	out := make(map[string]int64)

	for _, name := range snap.TaxInvoiced {
		out[name] = in.TaxInvoiced[name]
	}

	for _, name := range snap.ZeroRated {
		v := in.ZeroRated[name]

		if prev, ok := out[name]; ok && name == SharedSource {
			out[name] = prev + v
			continue
		}

		out[name] = v
	}

	out[category.Other] = in.Other

	return out
}

// CollectExpense keeps the registered items, zero-filling the missing ones.
func CollectExpense(snap category.Snapshot, in map[string]int64) map[string]int64 {
	names := snap.ExpenseNames()
	out := make(map[string]int64, len(names))

	for _, name := range names {
		out[name] = in[name]
	}

	return out
}

// GroupSubtotals sums each revenue group over a flat revenue map. A name
// registered in both groups counts toward both subtotals.
func GroupSubtotals(snap category.Snapshot, revenue map[string]int64) map[category.Group]int64 {
	out := make(map[category.Group]int64, 2)

	for _, g := range category.Groups() {
		var total int64
		for _, name := range snap.GroupNames(g) {
			total += revenue[name]
		}

		out[g] = total
	}

	return out
}
