package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"app-vet/internal/ports/auth"
)

const DefaultTTL = 12 * time.Hour

var (
	ErrSecretRequired = errors.New("jwt secret is required")
	ErrInvalidToken   = errors.New("invalid token")
)

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	ClinicID string `json:"clinic_id,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator emite y verifica tokens HS256. Implementa auth.TokenIssuer y auth.AuthVerifier.
type Authenticator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func New(cfg Config) (*Authenticator, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = "app-vet"
	}
	return &Authenticator{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (a *Authenticator) Issue(c auth.Claims) (string, time.Duration, error) {
	if strings.TrimSpace(c.UserID) == "" {
		return "", 0, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	now := a.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Username: c.Username,
		Role:     string(c.Role),
		ClinicID: c.ClinicID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	})

	signed, err := tok.SignedString(a.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return signed, a.ttl, nil
}

func (a *Authenticator) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var tc tokenClaims
	_, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role, ok := auth.ParseRole(tc.Role)
	if !ok || strings.TrimSpace(tc.Subject) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID:   tc.Subject,
		Username: tc.Username,
		Role:     role,
		ClinicID: tc.ClinicID,
	}, nil
}
