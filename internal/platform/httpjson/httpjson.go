// Package httpjson concentra el sobre JSON {success, message, ...} que usan todos los handlers.
package httpjson

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

type ctxKey struct{}

// ExposeDetails marca el request para que FailInternal incluya el error interno.
// Se monta solo fuera de producción.
func ExposeDetails(expose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !expose {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, true)))
		})
	}
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK responde {success:true, ...payload}.
func OK(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	Write(w, status, body)
}

// Fail responde {success:false, message}.
func Fail(w http.ResponseWriter, status int, message string) {
	Write(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

// FailInternal responde 500; con ExposeDetails agrega "details" con el error.
func FailInternal(w http.ResponseWriter, r *http.Request, message string, err error) {
	body := map[string]any{
		"success": false,
		"message": message,
	}
	if expose, _ := r.Context().Value(ctxKey{}).(bool); expose && err != nil {
		body["details"] = err.Error()
	}
	Write(w, http.StatusInternalServerError, body)
}

// Decode lee un body JSON limitado a 1MB.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v)
}
