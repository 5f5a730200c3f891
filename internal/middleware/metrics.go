package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_generated_total",
			Help: "Total number of leads produced by the generation pipeline",
		},
	)

	generationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_generation_failures_total",
			Help: "Total number of failed generation runs",
		},
		[]string{"reason"},
	)

	rateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_rate_limit_rejections_total",
			Help: "Total number of generation requests rejected by the daily quota",
		},
	)
)

// Metrics records request counts and latencies for every route.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		status := strconv.Itoa(rw.statusCode)
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func RecordLeadsGenerated(n int) {
	leadsGenerated.Add(float64(n))
}

func RecordGenerationFailure(reason string) {
	generationFailures.WithLabelValues(reason).Inc()
}

func RecordRateLimitRejection() {
	rateLimitRejections.Inc()
}
