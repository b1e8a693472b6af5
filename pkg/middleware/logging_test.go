package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/askadb-query-engine/pkg/log"
	"github.com/vfg2006/askadb-query-engine/pkg/metrics"
)

func TestLoggingMiddleware_PropagaCorrelationID(t *testing.T) {
	var correlationID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	LoggingMiddleware(nil, nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, correlationID)
}

func TestLoggingMiddleware_Metricas(t *testing.T) {
	m := metrics.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	isRoute := func(path string) bool { return path == "/health" }
	handler := LoggingMiddleware(m, isRoute)(Cors()(next))

	type request struct {
		method string
		path   string
	}

	requests := []request{
		{http.MethodGet, "/health"},
		{http.MethodGet, "/health"},
		{http.MethodGet, "/a"},
		{http.MethodGet, "/b"},
		{http.MethodPost, "/health/1/"},
		{"PROPFIND", "/health"},
	}
	// preflights são respondidos pelo CORS antes de qualquer roteamento
	for i := 0; i < 50; i++ {
		requests = append(requests, request{http.MethodOptions, fmt.Sprintf("/x%d", i)})
	}

	for _, req := range requests {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(req.method, req.path, nil))
	}

	assert.Equal(t, map[string]float64{
		"GET /health 200":       2,
		"GET unmatched 404":     2,
		"POST unmatched 404":    1,
		"OTHER /health 200":     1,
		"OPTIONS unmatched 200": 50,
	}, requestCounts(t, m))
}

func TestLoggingMiddleware_SemTabelaDeRotas(t *testing.T) {
	m := metrics.New()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := LoggingMiddleware(m, nil)(next)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, map[string]float64{"GET unmatched 200": 1}, requestCounts(t, m))
}

func requestCounts(t *testing.T, m *metrics.Metrics) map[string]float64 {
	t.Helper()

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, family := range families {
		if family.GetName() != "askadb_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, label.GetValue())
			}
			counts[strings.Join(labels, " ")] = metric.GetCounter().GetValue()
		}
	}

	return counts
}

func TestLoggingResponseWriter_PrimeiroStatusVale(t *testing.T) {
	rec := httptest.NewRecorder()
	lrw := newLoggingResponseWriter(rec)

	_, _ = lrw.Write([]byte("x"))
	lrw.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusOK, lrw.statusCode)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogPanicMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		LogPanicMiddleware()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/execute", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"SRV_001","message":"Erro interno no servidor"}`, rec.Body.String())
}
