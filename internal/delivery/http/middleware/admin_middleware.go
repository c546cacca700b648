package middleware

import (
	"net/http"

	"urbancart-backend/pkg/utils"
)

// AdminOnly must run after Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		if !claims.IsAdmin {
			utils.WriteError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
