package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "finance_tracker"

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "route", "status"},
	)

	actionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "operator",
			Name:      "action_duration_seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"action", "failed"},
	)

	guardDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guard",
			Name:      "denials_total",
		},
		[]string{"resource", "reason"},
	)

	totalsCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "totals_cache",
			Name:      "lookups_total",
		},
		[]string{"result"},
	)
)

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	requestDuration.
		WithLabelValues(method, route, strconv.Itoa(status)).
		Observe(elapsed.Seconds())
}

func ObserveAction(action string, failed bool, elapsed time.Duration) {
	actionDuration.
		WithLabelValues(action, strconv.FormatBool(failed)).
		Observe(elapsed.Seconds())
}

func GuardDenied(resource, reason string) {
	guardDenials.WithLabelValues(resource, reason).Inc()
}

func TotalsCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	totalsCacheLookups.WithLabelValues(result).Inc()
}
