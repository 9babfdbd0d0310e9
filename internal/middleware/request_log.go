package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-care-tracker/internal/platform/logger"
)

// RequestLog emite una línea por request con el request_id de chi.
func RequestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
			}

			switch {
			case status >= 500:
				log.Error("http_request", fields)
			case status >= 400:
				log.Warn("http_request", fields)
			default:
				log.Info("http_request", fields)
			}
		})
	}
}
