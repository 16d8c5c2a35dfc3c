package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds the request collectors of one service.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewHTTPMetrics creates and registers <service>_requests_total and
// <service>_request_duration_seconds on reg.
func NewHTTPMetrics(reg prometheus.Registerer, service string) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: service + "_requests_total",
				Help: "Total number of requests to " + service,
			},
			[]string{"method", "endpoint", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    service + "_request_duration_seconds",
				Help:    "Duration of " + service + " requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

// Wrap records metrics for next under the endpoint label.
func (m *HTTPMetrics) Wrap(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := NewStatusRecorder(w)
		next.ServeHTTP(rw, r)

		m.latency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.Status)).Inc()
	}
}
