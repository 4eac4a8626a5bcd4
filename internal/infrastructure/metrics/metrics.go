// Package metrics exposes auth and HTTP counters in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gohub"

// Registry holds every collector of the process. Use one per process; tests
// create their own.
type Registry struct {
	reg *prometheus.Registry

	authOutcomes *prometheus.CounterVec
	evictions    prometheus.Counter
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "operations_total",
			Help:      "Auth operations by operation and result.",
		}, []string{"operation", "result"}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "device_evictions_total",
			Help:      "Logins that logged out the user's previous device.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.authOutcomes,
		r.evictions,
		r.requests,
		r.latency,
	)
	return r
}

// ObserveAuth counts one auth operation. result is "success" or an error type.
func (r *Registry) ObserveAuth(operation, result string) {
	r.authOutcomes.WithLabelValues(operation, result).Inc()
}

func (r *Registry) ObserveEviction() {
	r.evictions.Inc()
}

// ObserveRequest records a served request. route is the matched route
// pattern, never the raw path.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
