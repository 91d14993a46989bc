// Package middleware provides the HTTP middleware chain: bearer-token
// identity resolution, admin-token flagging, and request logging.
package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"crashlog/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for the authenticated user's email.
	EmailKey contextKey = "email"
	// AdminKey is the context key marking an admin-authorized request.
	AdminKey contextKey = "admin"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if the request carried no valid token.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// IsAdmin reports whether the request carried the admin token.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(AdminKey).(bool)
	return admin
}

// ResolveIdentity validates a bearer token if one is present and adds the
// caller's identity to the request context. Requests without a token pass
// through untouched: unauthenticated operations (createUser, login,
// the person registry) share the same endpoint, so per-operation
// authentication is enforced in the service layer, where "no credential"
// stays distinguishable from "credential but not the owner".
func ResolveIdentity(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					claims, err := jwtManager.Validate(parts[1])
					if err == nil {
						ctx := r.Context()
						ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
						ctx = context.WithValue(ctx, EmailKey, claims.Email)
						r = r.WithContext(ctx)
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ResolveAdmin marks the request as admin-authorized when the X-Admin-Token
// header matches the configured token. An empty configured token disables
// admin operations entirely.
func ResolveAdmin(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminToken != "" {
				supplied := r.Header.Get("X-Admin-Token")
				if supplied != "" && subtle.ConstantTimeCompare([]byte(supplied), []byte(adminToken)) == 1 {
					ctx := context.WithValue(r.Context(), AdminKey, true)
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
