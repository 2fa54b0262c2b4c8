package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readnextapp/readnext-server/internal/domain"
	"github.com/readnextapp/readnext-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// userKey is the context key for the authenticated user.
const userKey ctxKey = "user"

// setUser stores the authenticated user in context.
func setUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// RequireUser returns the authenticated user from context.
// Returns a 401 error if no valid token was presented.
func RequireUser(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(userKey).(*domain.User)
	if !ok || user == nil {
		return nil, huma.Error401Unauthorized("Authentication required")
	}
	return user, nil
}

// authMiddleware validates Bearer tokens and stores the user in context.
// Missing or invalid tokens pass through without a user; handlers that
// need one reject via RequireUser.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			user, err := auth.VerifyToken(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(setUser(r.Context(), user)))
		})
	}
}
