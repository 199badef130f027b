package auth

import (
	"context"
	"time"
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens de acceso para un login exitoso.
type TokenIssuer interface {
	Issue(claims Claims) (token string, ttl time.Duration, err error)
}
