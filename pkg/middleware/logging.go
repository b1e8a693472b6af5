package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/askadb-query-engine/pkg/apiErrors"
	"github.com/vfg2006/askadb-query-engine/pkg/log"
	"github.com/vfg2006/askadb-query-engine/pkg/metrics"
)

// unmatchedPath e otherMethod agrupam caminhos e métodos fora da tabela de
// rotas num único rótulo de métrica
const (
	unmatchedPath = "unmatched"
	otherMethod   = "OTHER"
)

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware registra cada requisição HTTP com um ID de correlação e,
// se m não for nil, alimenta as métricas de requisição. isRoute diz quais
// caminhos ganham rótulo próprio; com isRoute nil todos viram unmatched.
func LoggingMiddleware(m *metrics.Metrics, isRoute func(path string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			logRequestStart(r, correlationID)

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(startTime)
			m.ObserveRequest(metricMethod(r), metricPath(r, isRoute), lrw.statusCode, elapsed)

			logRequestEnd(r, correlationID, lrw.statusCode, elapsed)
		})
	}
}

func logRequestStart(r *http.Request, correlationID string) {
	if log.IsDevelopment() {
		log.L.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Info("→ Iniciando requisição")
		return
	}

	log.L.WithFields(log.Fields{
		"correlation_id": correlationID,
		"remote_addr":    r.RemoteAddr,
		"method":         r.Method,
		"path":           r.URL.Path,
		"user_agent":     r.UserAgent(),
		"content_type":   r.Header.Get("Content-Type"),
		"content_length": r.ContentLength,
	}).Info("Requisição iniciada")
}

func logRequestEnd(r *http.Request, correlationID string, statusCode int, elapsed time.Duration) {
	fields := log.Fields{
		"correlation_id": correlationID,
		"method":         r.Method,
		"path":           r.URL.Path,
		"status_code":    statusCode,
		"duration_ms":    elapsed.Milliseconds(),
	}
	logger := log.L.WithFields(fields)

	message := "Requisição finalizada"
	if log.IsDevelopment() {
		symbol := "✓"
		if statusCode >= http.StatusBadRequest {
			symbol = "✗"
		}
		message = fmt.Sprintf("%s Completada em %s", symbol, formatDuration(elapsed))
	}

	switch {
	case statusCode >= http.StatusInternalServerError:
		logger.Error(message)
	case statusCode >= http.StatusBadRequest:
		logger.Warn(message)
	default:
		logger.Info(message)
	}

	if elapsed > slowRequestThreshold {
		logger.Warnf("Requisição lenta: %s %s (%dms)", r.Method, r.URL.Path, elapsed.Milliseconds())
	}
}

// metricPath evita um rótulo por URL desconhecida, inclusive nos preflights
// que o CORS responde antes do roteador
func metricPath(r *http.Request, isRoute func(path string) bool) string {
	if isRoute == nil || !isRoute(r.URL.Path) {
		return unmatchedPath
	}
	return r.URL.Path
}

func metricMethod(r *http.Request) string {
	if knownMethods[r.Method] {
		return r.Method
	}
	return otherMethod
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter guarda o primeiro status escrito na resposta
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if lrw.wroteHeader {
		return
	}
	lrw.wroteHeader = true
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.wroteHeader = true
	return lrw.ResponseWriter.Write(b)
}

// LogPanicMiddleware transforma um panic em resposta 500 com o stack trace no log
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stackTrace := string(stack[:runtime.Stack(stack, false)])

					logger := log.L.WithFields(log.Fields{
						"correlation_id": log.GetCorrelationID(r.Context()),
						"error":          err,
						"method":         r.Method,
						"path":           r.URL.Path,
					})

					if log.IsDevelopment() {
						logger.Error("❌ PANIC na aplicação")
						fmt.Fprintf(os.Stderr, "\n\n=== STACK TRACE ===\n%s\n=================\n\n", stackTrace)
					} else {
						logger.WithField("stack_trace", stackTrace).Error("Erro não tratado na aplicação")
					}

					apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
