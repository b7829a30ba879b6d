package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/filmdb/movies-api/internal/auth"
	"github.com/filmdb/movies-api/internal/httpx"
)

type ctxKey struct{}

// TokenVerifier validates a bearer token and returns its payload.
type TokenVerifier interface {
	Verify(token string) (*auth.Payload, error)
}

// RequireAuth is middleware that validates the bearer token and injects its
// payload into the request context. A missing token is 401, a bad or
// expired one 403.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httpx.WriteError(w, http.StatusUnauthorized, "token required")
				return
			}

			payload, err := tokens.Verify(token)
			if err != nil {
				httpx.WriteError(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PayloadFromContext returns the token payload attached by RequireAuth.
func PayloadFromContext(ctx context.Context) (*auth.Payload, bool) {
	p, ok := ctx.Value(ctxKey{}).(*auth.Payload)
	return p, ok
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
