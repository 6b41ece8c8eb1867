package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentsTotal counts finished payment attempts by method and
	// terminal status.
	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_engine_payments_total",
		Help: "Finished payment attempts by method and terminal status.",
	}, []string{"method", "status"})

	// VerificationFailuresTotal counts rejected verification submissions.
	VerificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_engine_verification_failures_total",
		Help: "Rejected verification code submissions.",
	})
)
