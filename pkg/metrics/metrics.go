package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "feedback_portal"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	FeedbackCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "feedback_created_total", Help: "Number of stored feedback submissions by person type."},
		[]string{"person_type"},
	)
	FeedbackRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "feedback_rejected_total", Help: "Number of submissions rejected by validation."},
	)
	AnalyticsCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "analytics_cache_hits_total", Help: "Analytics cache hits by view."},
		[]string{"view"},
	)
	AnalyticsCacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "analytics_cache_misses_total", Help: "Analytics cache misses by view."},
		[]string{"view"},
	)
	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "store_operation_seconds", Help: "Feedback store operation latency.", Buckets: prometheus.DefBuckets},
		[]string{"operation"},
	)
	ExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "exports_total", Help: "Feedback exports by outcome."},
		[]string{"outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(FeedbackCreated)
	reg.MustRegister(FeedbackRejected)
	reg.MustRegister(AnalyticsCacheHits)
	reg.MustRegister(AnalyticsCacheMisses)
	reg.MustRegister(StoreDuration)
	reg.MustRegister(ExportsTotal)
}
