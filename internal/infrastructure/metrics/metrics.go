package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the wallet Prometheus metrics. It implements usecase.Observer.
type Metrics struct {
	// Wallet operation metrics
	Operations          *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec
	IdempotentReplays   *prometheus.CounterVec
	ConcurrentConflict  *prometheus.CounterVec
	SettlementAnomalies *prometheus.CounterVec

	// Vendor access metrics
	AuthFailures  *prometheus.CounterVec
	RateLimitHits prometheus.Counter

	// Reconciliation metrics
	ReconciledAccounts prometheus.Gauge
	Discrepancies      prometheus.Gauge
}

// New creates the wallet metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamewallet_operations_total",
				Help: "Wallet operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gamewallet_operation_duration_seconds",
				Help:    "Duration of wallet operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		IdempotentReplays: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamewallet_idempotent_replays_total",
				Help: "Requests answered from an already applied transaction",
			},
			[]string{"operation"},
		),
		ConcurrentConflict: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamewallet_balance_conflicts_total",
				Help: "Balance compare-and-swap conflicts",
			},
			[]string{"operation"},
		),
		SettlementAnomalies: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamewallet_settlement_anomalies_total",
				Help: "Settlements with an unknown result type, recorded without a balance change",
			},
			[]string{"result_type"},
		),

		AuthFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gamewallet_auth_failures_total",
				Help: "Rejected vendor signatures and credentials",
			},
			[]string{"surface"},
		),
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gamewallet_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		}),

		ReconciledAccounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gamewallet_reconciled_accounts",
			Help: "Accounts checked by the last conservation report",
		}),
		Discrepancies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gamewallet_reconciliation_discrepancies",
			Help: "Accounts whose balance disagrees with their money log",
		}),
	}
}

// OperationCompleted records the outcome and latency of one wallet operation.
func (m *Metrics) OperationCompleted(operation, outcome string, elapsed time.Duration) {
	m.Operations.WithLabelValues(operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// IdempotentReplay counts a request answered from an applied transaction.
func (m *Metrics) IdempotentReplay(operation string) {
	m.IdempotentReplays.WithLabelValues(operation).Inc()
}

// ConcurrencyConflict counts a lost balance compare-and-swap.
func (m *Metrics) ConcurrencyConflict(operation string) {
	m.ConcurrentConflict.WithLabelValues(operation).Inc()
}

// SettlementAnomaly counts a settlement with an unknown result type.
func (m *Metrics) SettlementAnomaly(resultType string) {
	m.SettlementAnomalies.WithLabelValues(resultType).Inc()
}

// AuthFailed counts a rejected signature or credential on surface.
func (m *Metrics) AuthFailed(surface string) {
	m.AuthFailures.WithLabelValues(surface).Inc()
}

// RateLimited counts a request rejected by the rate limiter.
func (m *Metrics) RateLimited() {
	m.RateLimitHits.Inc()
}

// ReconciliationCompleted publishes the totals of a conservation report.
func (m *Metrics) ReconciliationCompleted(total, discrepancies int) {
	m.ReconciledAccounts.Set(float64(total))
	m.Discrepancies.Set(float64(discrepancies))
}
