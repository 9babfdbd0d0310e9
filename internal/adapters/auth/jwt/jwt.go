package jwt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"pet-care-tracker/internal/ports/auth"
)

const (
	DefaultTTL    = 24 * time.Hour
	DefaultIssuer = "pet-care-tracker"
)

var (
	ErrNotConfigured = errors.New("jwt secret not configured")
	ErrTokenEmpty    = errors.New("token is empty")
)

type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// tokenClaims viaja firmado: sub = user id, username aparte.
type tokenClaims struct {
	Username string `json:"username"`
	gojwt.RegisteredClaims
}

// Manager implementa auth.AuthVerifier y auth.TokenIssuer con HS256.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewManager(cfg Config) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

func (m *Manager) Issue(claims auth.Claims) (string, time.Time, error) {
	if m == nil || len(m.secret) == 0 {
		return "", time.Time{}, ErrNotConfigured
	}
	if claims.UserID <= 0 {
		return "", time.Time{}, errors.New("jwt: user id required")
	}

	now := m.now()
	exp := now.Add(m.ttl)

	tc := tokenClaims{
		Username: claims.Username,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.UserID, 10),
			Issuer:    m.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(exp),
		},
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, tc).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, exp, nil
}

func (m *Manager) Verify(_ context.Context, token string) (auth.Claims, error) {
	if m == nil || len(m.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := gojwt.ParseWithClaims(token, &tokenClaims{}, func(t *gojwt.Token) (any, error) {
		if t.Method != gojwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		gojwt.WithIssuer(m.issuer),
		gojwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	uid, err := strconv.ParseInt(tc.Subject, 10, 64)
	if err != nil || uid <= 0 {
		return auth.Claims{}, fmt.Errorf("%w: bad subject", auth.ErrInvalidToken)
	}

	return auth.Claims{
		UserID:   uid,
		Username: tc.Username,
	}, nil
}
