package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const RequestIDHeader = "X-Request-ID"

// RequestID devuelve al cliente el id que generó chimw.RequestID
// (montar después de él) para poder cruzarlo con los logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
