package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/veldbank/corebank/internal/domain"
	"github.com/veldbank/corebank/internal/infrastructure/auth"
)

// ContextKey is the type for context keys.
type ContextKey string

// UserContextKey is the context key for the authenticated user.
const UserContextKey ContextKey = "user"

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verifyRequest(jwtManager, r)
			if !ok {
				http.Error(w, "invalid or missing token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches the user to the context when a valid token is
// present but lets anonymous requests through. Transfers use it to attribute
// the performing user without forcing authentication on every ATM.
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := verifyRequest(jwtManager, r); ok {
				r = r.WithContext(withUser(r.Context(), claims))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts the authenticated user from context.
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok
}

func verifyRequest(jwtManager *auth.JWTManager, r *http.Request) (*auth.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := jwtManager.Verify(parts[1])
	if err != nil {
		return nil, false
	}

	return claims, true
}

func withUser(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, UserContextKey, &domain.User{
		ID:    claims.UserID,
		Email: claims.Email,
	})
}
