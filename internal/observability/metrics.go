package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	intents         *prometheus.CounterVec
	tickets         *prometheus.CounterVec
	appointments    *prometheus.CounterVec
}

// NewMetrics registers collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "support_desk_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "support_desk_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "support_desk_http_errors_total",
			Help: "Domain errors returned to clients by code.",
		}, []string{"method", "path", "code"}),
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "support_desk_chat_intents_total",
			Help: "Classified chat messages by intent.",
		}, []string{"intent"}),
		tickets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "support_desk_tickets_total",
			Help: "Ticket operations by action and source.",
		}, []string{"action", "source"}),
		appointments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "support_desk_appointments_total",
			Help: "Appointment operations by action and outcome.",
		}, []string{"action", "outcome"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.errors,
		m.intents,
		m.tickets,
		m.appointments,
	)
	return m
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(method, path, code).Inc()
}

// RecordIntent counts one classified chat message.
func (m *Metrics) RecordIntent(intent string) {
	if m == nil {
		return
	}
	m.intents.WithLabelValues(intent).Inc()
}

// RecordTicket counts a ticket action (created, toggled).
func (m *Metrics) RecordTicket(action, source string) {
	if m == nil {
		return
	}
	m.tickets.WithLabelValues(action, source).Inc()
}

// RecordAppointment counts an appointment action (book, cancel) and its outcome.
func (m *Metrics) RecordAppointment(action, outcome string) {
	if m == nil {
		return
	}
	m.appointments.WithLabelValues(action, outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
