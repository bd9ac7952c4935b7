// internal/api/middleware.go
package api

import (
	"log/slog"
	"net/http"

	"storefront/internal/api/handler"
	"storefront/internal/auth"
	"storefront/internal/domain"
)

// Authenticate verifies the session cookie and puts the principal into the
// request context. Requests without a valid token get 401.
func Authenticate(tokens *auth.TokenIssuer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(handler.TokenCookie)
			if err != nil {
				unauthorized(w, "Authentication required")
				return
			}

			principal, err := tokens.Verify(cookie.Value)
			if err != nil {
				logger.Debug("Rejected session token", "error", err)
				unauthorized(w, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAdmin gates a route group to administrators. Must run after
// Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok || principal.Role != domain.RoleAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Admin access required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
