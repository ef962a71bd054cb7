package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Metrics holds the collectors for the api client and the ui server.
// Each instance has its own registry so tests can create as many as they need.
type Metrics struct {
	Registry *prometheus.Registry

	ClientRequests  *prometheus.CounterVec
	ClientLatencyMS *prometheus.HistogramVec
	ServerRequests  *prometheus.CounterVec
	ServerLatencyMS *prometheus.HistogramVec
	Notifications   *prometheus.CounterVec
}

func New() *Metrics {
	clientRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of backend api calls.",
	}, []string{"operation", "status"})
	clientLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "request_duration_ms",
		Help:      "Backend api call latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"operation"})
	serverRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ui",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled by the ui server.",
	}, []string{"route", "status"})
	serverLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ui",
		Name:      "http_request_duration_ms",
		Help:      "ui server request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notify",
		Name:      "notifications_total",
		Help:      "Notifications raised, by outcome (toast, error_toast, alert).",
	}, []string{"kind"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(clientRequests, clientLatency, serverRequests, serverLatency, notifications)

	return &Metrics{
		Registry:        reg,
		ClientRequests:  clientRequests,
		ClientLatencyMS: clientLatency,
		ServerRequests:  serverRequests,
		ServerLatencyMS: serverLatency,
		Notifications:   notifications,
	}
}

// ObserveClientCall records one backend call. status is the HTTP status code or "error" when no response was received.
func (m *Metrics) ObserveClientCall(operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.ClientRequests.WithLabelValues(operation, status).Inc()
	m.ClientLatencyMS.WithLabelValues(operation).Observe(float64(d.Milliseconds()))
}

// ObserveNotification counts a notification by kind
func (m *Metrics) ObserveNotification(kind string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(kind).Inc()
}

// Middleware records request counts and latency per chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.ServerRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		m.ServerLatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	})
}

// Handler exposes the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
