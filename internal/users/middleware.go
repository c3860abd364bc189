// internal/users/middleware.go
// Session middleware: resolves the caller from the http-only cookie
// set at login, with a Bearer header fallback for non-browser clients.

package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/snapgram/snapgram-backend/internal/common/utils"
)

// CookieName is the session cookie set on login
const CookieName = "token"

// Middleware provides authentication middleware
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new session middleware
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// Authenticate protects routes: it validates the session token and adds
// the caller's identity to the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			utils.ErrorResponse(w, "User not authenticated", http.StatusUnauthorized)
			return
		}

		claims, err := m.service.ValidateToken(r.Context(), token)
		if err != nil {
			utils.ErrorResponse(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		ctx = context.WithValue(ctx, "username", claims.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken pulls the session token from the cookie or, failing
// that, from an "Authorization: Bearer" header.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// GetUserIDFromContext extracts the caller's user ID from the request context
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value("userID").(int64)
	return userID, ok
}
