package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ivannizarr/chill-app-adv-be/pkg/auth"
)

// ContextKey is the type for request context keys set by the middleware.
type ContextKey string

const (
	// UserIDKey holds the authenticated user's ID.
	UserIDKey ContextKey = "userID"
	// UserEmailKey holds the authenticated user's email.
	UserEmailKey ContextKey = "userEmail"
	// UserRoleKey holds the authenticated user's role. The role is only
	// ever sourced from the verified token, never from request bodies.
	UserRoleKey ContextKey = "userRole"
)

// Authenticate verifies the bearer token and attaches the identity to the
// request context. Only session tokens pass; tokens minted for email
// verification or password reset are rejected here.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.logger.WarnContext(r.Context(), "Authorization header missing", slog.String("path", r.URL.Path))
			h.respondError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			h.logger.WarnContext(r.Context(), "Invalid Authorization header format", slog.String("path", r.URL.Path))
			h.respondError(w, r, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		claims, err := h.tokenManager.Validate(parts[1], auth.PurposeSession)
		if err != nil {
			h.logger.WarnContext(r.Context(), "Invalid or expired token", slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, UserRoleKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route behind an exact role match. It must run after
// Authenticate.
func (h *Handler) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			currentRole, ok := r.Context().Value(UserRoleKey).(string)
			if !ok || currentRole != role {
				h.logger.WarnContext(r.Context(), "Role check failed",
					slog.String("required", role),
					slog.String("path", r.URL.Path))
				h.respondError(w, r, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// userIDFromContext returns the authenticated user's ID.
func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
