package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		webhooksTotal,
		webhookDuration,
		purchasesCompletedTotal,
		revenueTotal,
		commissionFailuresTotal,
	)
}

var (
	webhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_webhooks_total",
			Help: "Webhook deliveries by gateway and outcome (completed/duplicate/ignored/rejected/error).",
		},
		[]string{"gateway", "outcome"},
	)

	webhookDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_webhook_duration_seconds",
			Help:    "End-to-end webhook processing time, including the router call.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"gateway"},
	)

	purchasesCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_completed_total",
			Help: "Purchases transitioned to completed, labeled by gateway.",
		},
		[]string{"gateway"},
	)

	revenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_revenue_total",
			Help: "Monetary value of completed purchases, labeled by currency.",
		},
		[]string{"currency"},
	)

	commissionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "commission_failures_total",
			Help: "Commission RPC failures (swallowed, purchase still completes).",
		},
	)
)

func IncWebhook(gateway, outcome string) {
	webhooksTotal.WithLabelValues(norm(gateway), norm(outcome)).Inc()
}

func ObserveWebhookDuration(gateway string, seconds float64) {
	webhookDuration.WithLabelValues(norm(gateway)).Observe(seconds)
}

func IncPurchaseCompleted(gateway string) {
	purchasesCompletedTotal.WithLabelValues(norm(gateway)).Inc()
}

func AddRevenue(currency string, amount int64) {
	revenueTotal.WithLabelValues(norm(currency)).Add(float64(amount))
}

func IncCommissionFailure() {
	commissionFailuresTotal.Inc()
}
