package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilNaoRegistraNada(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveQuery(StatusSuccess, 1, time.Millisecond)
		m.ObserveRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()

	m.ObserveQuery(StatusSuccess, 40, 2*time.Millisecond)
	m.ObserveQuery(StatusError, 0, time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/execute", http.StatusOK, 3*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	output := string(body)
	assert.Contains(t, output, `askadb_queries_total{status="success"} 1`)
	assert.Contains(t, output, `askadb_queries_total{status="error"} 1`)
	assert.Contains(t, output, `askadb_query_rows_count 1`)
	assert.Contains(t, output, `askadb_http_requests_total{method="POST",path="/execute",status="200"} 1`)
	assert.Contains(t, output, "go_goroutines")
}
