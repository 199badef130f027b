package middleware

import (
	"context"
	"net/http"
	"strings"

	"app-vet/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Headers del modo dev (sin verifier).
const (
	HeaderDebugUserID   = "X-Debug-User-ID"
	HeaderDebugRole     = "X-Debug-Role"
	HeaderDebugClinicID = "X-Debug-Clinic-ID"
)

// AuthContext:
//   - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims.
//   - Si verifier == nil => modo dev: X-Debug-User-ID (+ X-Debug-Role, X-Debug-Clinic-ID).
//     Sin X-Debug-Role el actor es tutor.
//   - Si no hay claims, el request sigue igual; los handlers deciden 401/403.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				claims, ok := debugClaims(r)
				if !ok {
					next.ServeHTTP(w, r)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func debugClaims(r *http.Request) (auth.Claims, bool) {
	uid := strings.TrimSpace(r.Header.Get(HeaderDebugUserID))
	if uid == "" {
		return auth.Claims{}, false
	}

	role := auth.RoleTutor
	if raw := strings.TrimSpace(r.Header.Get(HeaderDebugRole)); raw != "" {
		parsed, ok := auth.ParseRole(raw)
		if !ok {
			return auth.Claims{}, false
		}
		role = parsed
	}

	return auth.Claims{
		UserID:   uid,
		Role:     role,
		ClinicID: strings.TrimSpace(r.Header.Get(HeaderDebugClinicID)),
	}, true
}

// WithClaims también lo usan los tests de handlers.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
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
