/*
middleware.go - Authentication middleware

PURPOSE:
  Resolves the Authorization bearer token into an identity.User and places
  it on the request context. Every handler behind the middleware reads the
  acting user from the context and passes it explicitly to the leave core.
*/
package api

import (
	"net/http"
	"strings"

	"github.com/Imrushtempo/Modulsite-SzabiTervezo/identity"
)

// authenticate verifies the bearer token and stores the user on the context.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Missing bearer token", nil)
			return
		}

		user, err := h.Identity.UserFromToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		if !user.IsActive {
			writeError(w, http.StatusForbidden, "Account is inactive", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.WithUser(r.Context(), user)))
	})
}

// actingUser reads the authenticated user; the auth middleware guarantees
// presence on every protected route.
func actingUser(r *http.Request) identity.User {
	if user := identity.FromContext(r.Context()); user != nil {
		return *user
	}
	return identity.User{}
}
