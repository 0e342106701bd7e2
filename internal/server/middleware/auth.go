// Package middleware provides HTTP middleware for bearer-token authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const profileIDKey ContextKey = "profileID"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (ProfileIDGetter, error)
}

// ProfileIDGetter extracts the profile a token grants access to.
type ProfileIDGetter interface {
	GetProfileID() uuid.UUID
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token's profile ID in the request context. A nil validator disables auth.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if validator == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), profileIDKey, claims.GetProfileID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken parses "Bearer <token>", case-insensitive on the scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// GetProfileID extracts the authenticated profile ID from the request context.
func GetProfileID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(profileIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("profile ID not found in request context")
	}
	return id, nil
}

// WithProfileID returns ctx carrying id, as AuthMiddleware would.
func WithProfileID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, profileIDKey, id)
}
