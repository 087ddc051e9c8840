package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/syirilrakhulh/oddbit-player/constant"
)

// Metrics holds the server's Prometheus collectors on a private registry.
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	bytesServed  prometheus.Counter
	streamErrors prometheus.Counter
	activeStream prometheus.Gauge
}

// NewMetrics registers the collectors, plus the Go runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.Oddbit,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: constant.Oddbit,
			Name:      "http_request_duration_seconds",
			Help:      "Time until the handler returned.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		bytesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: constant.Oddbit,
			Name:      "stream_bytes_total",
			Help:      "Media bytes written to clients.",
		}),
		streamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: constant.Oddbit,
			Name:      "stream_errors_total",
			Help:      "Streams aborted after headers were sent.",
		}),
		activeStream: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: constant.Oddbit,
			Name:      "active_streams",
			Help:      "Streams currently copying bytes.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.latency,
		m.bytesServed,
		m.streamErrors,
		m.activeStream,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
