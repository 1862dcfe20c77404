package rest

import (
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/port"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const TraceIDHeader = "X-Trace-ID"

// LoggerMiddleware создает контекстный логгер и trace_id для каждого запроса.
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Чужой trace_id принимаем только в виде UUID
			traceID := r.Header.Get(TraceIDHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = uuid.NewString()
			}

			coreLogger := logger.WithFields(port.Fields{"trace_id": traceID})
			httpLogger := coreLogger.WithFields(port.Fields{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			ctx := contextkeys.ContextWithLogger(r.Context(), coreLogger)
			ctx = contextkeys.ContextWithTraceID(ctx, traceID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Header().Set(TraceIDHeader, traceID)
			startTime := time.Now()

			httpLogger.Debug("Request started", nil)

			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := port.Fields{
				"status_code":   ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(startTime).Milliseconds(),
			}
			if ww.Status() >= http.StatusInternalServerError {
				httpLogger.Warn("Request finished with server error", fields)
				return
			}
			httpLogger.Info("Request finished", fields)
		})
	}
}
