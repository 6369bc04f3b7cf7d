package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Wallet metrics
	WalletsCreated prometheus.Counter

	// Deposit metrics
	DepositsCreated prometheus.Counter
	DepositDuration prometheus.Histogram
	DepositErrors   *prometheus.CounterVec

	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec

	// Idempotency metrics
	IdempotentReplays *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics. Call once per process.
func New() *Metrics {
	return &Metrics{
		WalletsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_wallets_created_total",
			Help: "Total number of wallets created",
		}),

		DepositsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_deposits_created_total",
			Help: "Total number of deposits applied",
		}),
		DepositDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_deposit_duration_seconds",
			Help:    "Duration of deposit operations",
			Buckets: prometheus.DefBuckets,
		}),
		DepositErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_deposit_errors_total",
				Help: "Total number of deposit errors by type",
			},
			[]string{"error_type"},
		),

		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletd_transfers_created_total",
			Help: "Total number of transfers applied",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletd_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		IdempotentReplays: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletd_idempotent_replays_total",
				Help: "Total number of operations answered from a prior recorded outcome",
			},
			[]string{"operation"},
		),
	}
}
