package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/kofi-dx/NoxManage/internal/security"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware validates the bearer token and stashes the caller's claims
// in the request context. Requests without a valid token are rejected before
// any handler runs.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondErrorMessage(w, http.StatusUnauthorized, "authentication required")
				return
			}
			claims, err := tokens.ValidateToken(token)
			if err != nil {
				respondErrorMessage(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated caller's claims, if any.
func UserFromContext(ctx context.Context) (*security.UserClaims, bool) {
	claims, ok := ctx.Value(userContextKey).(*security.UserClaims)
	return claims, ok
}
