package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Wallet metrics
	WalletsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finwallet_wallets_created_total",
		Help: "Total number of wallets created",
	})
	WalletsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finwallet_wallets_deleted_total",
		Help: "Total number of wallets deleted",
	})
	Withdrawals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finwallet_withdrawals_total",
		Help: "Total number of withdrawals executed",
	})

	// Merge/transfer metrics
	MergesExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finwallet_merges_executed_total",
			Help: "Total number of wallet merges executed",
		},
		[]string{"keep"},
	)
	TransfersExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finwallet_transfers_executed_total",
		Help: "Total number of wallet transfers executed",
	})
	ConversionsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "finwallet_currency_conversions_total",
		Help: "Total number of cross-currency conversions applied",
	})

	// Budget metrics
	BudgetChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finwallet_budget_checks_total",
			Help: "Total budget threshold checks by classification",
		},
		[]string{"status"},
	)

	// Schedule metrics
	SchedulesRun = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finwallet_schedules_run_total",
			Help: "Total scheduled transactions executed by outcome",
		},
		[]string{"outcome"},
	)
)
