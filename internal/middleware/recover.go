package middleware

import (
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-care-tracker/internal/platform/httpjson"
	"pet-care-tracker/internal/platform/logger"
)

// Recover convierte un panic en 500 con el envelope JSON y lo loguea con stack.
// http.ErrAbortHandler se re-lanza (lo usa net/http para cortar la respuesta).
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic recovered", map[string]any{
					"panic":      rec,
					"path":       r.URL.Path,
					"request_id": chimw.GetReqID(r.Context()),
					"stack":      string(debug.Stack()),
				})
				httpjson.Fail(w, http.StatusInternalServerError, "internal error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
