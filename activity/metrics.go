package activity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	undecodableLogCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verdict_activity_undecodable_log_total",
		Help: "Increased when a program data log line matches no known discriminator or fails schema decoding",
	})
	inferredEntryCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verdict_activity_inferred_entry_total",
		Help: "Increased when a transaction yields no structured event and falls back to heuristic inference",
	})
	reconciledTxCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verdict_activity_reconciled_transaction_total",
		Help: "Increased for every transaction processed by the reconciliation engine",
	})
)
