package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TenantsExpired counts tenants downgraded after their premium window lapsed.
	TenantsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "billing_tenants_expired_total",
		Help: "Number of tenants downgraded to past_due by the recompute job",
	})

	// WarningsSent counts delivered expiry warning emails by kind.
	WarningsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_warnings_sent_total",
		Help: "Number of expiry warning emails delivered, by warning kind",
	}, []string{"kind"})

	// WarningDeliveryFailures counts warning emails that could not be delivered.
	WarningDeliveryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_warning_delivery_failures_total",
		Help: "Number of expiry warning emails that failed to send, by warning kind",
	}, []string{"kind"})

	// TrialsStarted counts trial activations by plan.
	TrialsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_trials_started_total",
		Help: "Number of trials started, by plan",
	}, []string{"plan"})

	// PaidActivations counts paid period activations by plan.
	PaidActivations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "billing_paid_activations_total",
		Help: "Number of paid period activations, by plan",
	}, []string{"plan"})
)
