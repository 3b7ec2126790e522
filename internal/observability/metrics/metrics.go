package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "worksafe_"

	resultSuccess  = "success"
	resultError    = "error"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"

	cacheHit  = "hit"
	cacheMiss = "miss"
)

var (
	registerOnce sync.Once

	operationTotal   *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	cacheLookups     *prometheus.CounterVec
	sideEffectErrors *prometheus.CounterVec
	riskEvaluations  *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
)

// Init registers the service metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		operationTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "workstation_operations_total",
				Help: "Total workstation operations by operation and result",
			},
			[]string{"op", "result"},
		)
		operationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "workstation_operation_latency_seconds",
				Help:    "Workstation operation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op", "result"},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)
		cacheLookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cache_lookups_total",
				Help: "Workstation cache lookups by result",
			},
			[]string{"result"},
		)
		sideEffectErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "side_effect_errors_total",
				Help: "Best-effort cache, index and publish failures by kind",
			},
			[]string{"kind"},
		)
		riskEvaluations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "risk_evaluations_total",
				Help: "Risk evaluations by resulting level",
			},
			[]string{"level"},
		)
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		prometheus.MustRegister(
			operationTotal,
			operationLatency,
			exportTotal,
			exportLatency,
			cacheLookups,
			sideEffectErrors,
			riskEvaluations,
			httpRequests,
			httpLatency,
		)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveOperation records a service operation result and duration.
func ObserveOperation(op, result string, duration time.Duration) {
	if op == "" {
		op = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if operationTotal != nil {
		operationTotal.WithLabelValues(op, result).Inc()
	}
	if operationLatency != nil {
		operationLatency.WithLabelValues(op, result).Observe(duration.Seconds())
	}
}

// ObserveExport records report export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncCacheLookup counts a cache hit or miss.
func IncCacheLookup(hit bool) {
	if cacheLookups == nil {
		return
	}
	if hit {
		cacheLookups.WithLabelValues(cacheHit).Inc()
		return
	}
	cacheLookups.WithLabelValues(cacheMiss).Inc()
}

// IncSideEffectError counts a swallowed cache, index or publish failure.
func IncSideEffectError(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	if sideEffectErrors != nil {
		sideEffectErrors.WithLabelValues(kind).Inc()
	}
}

// IncRiskEvaluation counts a computed risk level.
func IncRiskEvaluation(level string) {
	if level == "" {
		level = "unknown"
	}
	if riskEvaluations != nil {
		riskEvaluations.WithLabelValues(level).Inc()
	}
}

// ObserveHTTP records a finished HTTP request. route is the matched pattern, not the raw path.
func ObserveHTTP(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess  = resultSuccess
	ResultError    = resultError
	ResultNotFound = resultNotFound
	ResultInvalid  = resultInvalid
)
