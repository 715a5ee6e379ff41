package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReportsGenerated counts report builds by type and outcome.
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerboard_reports_generated_total",
			Help: "Reports built, by report type and status",
		},
		[]string{"type", "status"},
	)

	// LedgerWrites counts ledger mutations by operation and outcome.
	LedgerWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerboard_ledger_writes_total",
			Help: "Ledger writes, by operation and status",
		},
		[]string{"operation", "status"},
	)

	CategoryChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledgerboard_category_changes_total",
			Help: "Category registry mutations, by kind and operation",
		},
		[]string{"kind", "operation"},
	)
)

// Status turns an error into the status label used by every counter.
func Status(err error) string {
	if err != nil {
		return "error"
	}

	return "ok"
}
