// Package metrics expõe os coletores Prometheus do serviço
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "askadb"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics agrupa os coletores. Um ponteiro nil é válido e não registra nada.
type Metrics struct {
	registry        *prometheus.Registry
	queriesTotal    *prometheus.CounterVec
	queryDuration   prometheus.Histogram
	queryRows       prometheus.Histogram
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Total de consultas executadas por status",
			},
			[]string{"status"},
		),
		queryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Duração das consultas SQL",
				Buckets:   prometheus.DefBuckets,
			},
		),
		queryRows: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_rows",
				Help:      "Quantidade de linhas retornadas por consulta",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de requisições HTTP",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duração das requisições HTTP",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.queriesTotal,
		m.queryDuration,
		m.queryRows,
		m.requestsTotal,
		m.requestDuration,
	)

	return m
}

func (m *Metrics) ObserveQuery(status string, rows int, duration time.Duration) {
	if m == nil {
		return
	}

	m.queriesTotal.WithLabelValues(status).Inc()
	m.queryDuration.Observe(duration.Seconds())
	if status == StatusSuccess {
		m.queryRows.Observe(float64(rows))
	}
}

func (m *Metrics) ObserveRequest(method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}

	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler devolve o endpoint de exposição no formato Prometheus
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer permite inspecionar os coletores em testes
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
