package httpapi

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// requireOwner gates state-mutating routes on the owner bearer token.
// With no configured hash the check is skipped (anonymous-owner mode).
func (s *Server) requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.ownerTokenHash == "" {
			next.ServeHTTP(w, r)
			return
		}
		token := extractToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing owner token")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(s.ownerTokenHash), []byte(token)); err != nil {
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid owner token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}
