package observability

import (
	"strconv"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics owns the service's collectors. It is registered on its own
// registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	appInfo             *prometheus.GaugeVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	transitionsTotal    *prometheus.CounterVec
	sseClients          prometheus.Gauge
}

var _ usecase.ITransitionObserver = (*Metrics)(nil)

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		appInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "repairdesk",
				Subsystem: "app",
				Name:      "info",
				Help:      "Static app info for deployment verification.",
			},
			[]string{"service", "version"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "repairdesk",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests processed.",
			},
			[]string{"method", "route", "code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "repairdesk",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		transitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "repairdesk",
				Subsystem: "jobs",
				Name:      "transitions_total",
				Help:      "Status transition attempts by outcome.",
			},
			[]string{"from", "to", "outcome"},
		),
		sseClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "repairdesk",
			Subsystem: "events",
			Name:      "clients",
			Help:      "Open job event streams.",
		}),
	}
	m.Registry.MustRegister(
		m.appInfo,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.transitionsTotal,
		m.sseClients,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) SetAppInfo(service, version string) {
	if version == "" {
		version = "dev"
	}
	m.appInfo.WithLabelValues(service, version).Set(1)
}

// ObserveHTTP records one request. route must be the matched pattern, not
// the raw path.
func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveTransition(from, to entities.JobStatus, outcome string) {
	m.transitionsTotal.WithLabelValues(string(from), string(to), outcome).Inc()
}

func (m *Metrics) StreamOpened() { m.sseClients.Inc() }
func (m *Metrics) StreamClosed() { m.sseClients.Dec() }
