package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		sessionsCreatedTotal,
		discountsAppliedTotal,
		routerProvisionTotal,
	)
}

var (
	sessionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_sessions_created_total",
			Help: "Pending purchase sessions created.",
		},
	)

	discountsAppliedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "referral_discounts_applied_total",
			Help: "Referral discounts applied to pending purchases.",
		},
	)

	routerProvisionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_provision_total",
			Help: "Hotspot account provisioning attempts by result (ok/error).",
		},
		[]string{"result"},
	)
)

func IncSessionCreated()  { sessionsCreatedTotal.Inc() }
func IncDiscountApplied() { discountsAppliedTotal.Inc() }
func IncRouterProvision(result string) {
	routerProvisionTotal.WithLabelValues(norm(result)).Inc()
}
