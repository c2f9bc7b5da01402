package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gifboard"

// Metrics holds the application collectors.
type Metrics struct {
	gifsCreated       prometheus.Counter
	validationErrors  *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpRequestLength *prometheus.HistogramVec
}

// NewMetrics builds the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		gifsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gifs_created_total",
			Help:      "Gifs stored successfully.",
		}),
		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gif_validation_errors_total",
			Help:      "Rejected gif attributes by field.",
		}, []string{"field"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestLength: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	if reg != nil {
		reg.MustRegister(m.gifsCreated, m.validationErrors, m.httpRequests, m.httpRequestLength)
	}
	return m
}

// GifCreated counts one stored gif.
func (m *Metrics) GifCreated() {
	m.gifsCreated.Inc()
}

// ValidationFailed counts one rejected attribute.
func (m *Metrics) ValidationFailed(field string) {
	m.validationErrors.WithLabelValues(field).Inc()
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestLength.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
