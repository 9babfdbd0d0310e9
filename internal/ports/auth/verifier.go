package auth

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidToken: firma inválida, token vencido o mal formado.
var ErrInvalidToken = errors.New("invalid or expired token")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma tokens para un usuario autenticado.
type TokenIssuer interface {
	Issue(claims Claims) (token string, expiresAt time.Time, err error)
}
