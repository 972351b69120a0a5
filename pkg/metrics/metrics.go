package metrics

import (
	"database/sql"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus metrics for a service
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight *prometheus.GaugeVec
	DBConnPoolStats  *prometheus.GaugeVec
}

var invalidMetricChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// NewMetrics creates a new metrics instance. The service name becomes the
// metric subsystem; characters that are not legal in a Prometheus metric
// name are replaced with underscores so names like "tyma-cms" register
// as "tyma_cms".
func NewMetrics(serviceName string) *Metrics {
	serviceName = invalidMetricChars.ReplaceAllString(serviceName, "_")
	return &Metrics{
		RequestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tyma",
				Subsystem: serviceName,
				Name:      "requests_total",
				Help:      "Total number of requests",
			},
			[]string{"method", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tyma",
				Subsystem: serviceName,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		RequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tyma",
				Subsystem: serviceName,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
			[]string{"method"},
		),
		DBConnPoolStats: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tyma",
				Subsystem: serviceName,
				Name:      "db_connection_pool",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"}, // stat can be: open, in_use, idle, wait_count
		),
	}
}

// Handler returns the Prometheus scrape endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// UpdateDBStats records the current connection pool statistics.
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	m.DBConnPoolStats.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.DBConnPoolStats.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.DBConnPoolStats.WithLabelValues("idle").Set(float64(stats.Idle))
	m.DBConnPoolStats.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
}

// statusRecorder captures the response status for the request counter.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware returns an HTTP middleware that tracks request counts,
// durations and in-flight requests. The method label uses the route
// template so path parameters do not explode the cardinality.
func Middleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method := r.Method + " " + routeTemplate(r)

			m.RequestsInFlight.WithLabelValues(method).Inc()
			defer m.RequestsInFlight.WithLabelValues(method).Dec()

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			m.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
			m.RequestCounter.WithLabelValues(method, strconv.Itoa(rec.status)).Inc()
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}
