package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-care-tracker/internal/platform/httpjson"
	"pet-care-tracker/internal/ports/auth"
)

type ctxKey string

const (
	claimsKey       ctxKey = "claims"
	invalidTokenKey ctxKey = "invalid_token"
)

// AuthContext:
// - Si viene Bearer token y verifier != nil => intenta Verify() y setea claims.
// - Si Verify falla, marca el request como "token inválido" (RequireAuth responde 403).
// - Nunca corta el request; las rutas protegidas montan RequireAuth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				ctx := context.WithValue(r.Context(), invalidTokenKey, true)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth corta con 401 si no hay token y con 403 si el token no verifica.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := GetClaims(r.Context()); ok && c.UserID > 0 {
			next.ServeHTTP(w, r)
			return
		}
		if invalid, _ := r.Context().Value(invalidTokenKey).(bool); invalid {
			httpjson.Fail(w, http.StatusForbidden, "invalid or expired token")
			return
		}
		httpjson.Fail(w, http.StatusUnauthorized, "authentication token required")
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// WithClaims inyecta claims directamente (tests de handlers).
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
