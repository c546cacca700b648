package middleware

import (
	"context"
	"net/http"

	"urbancart-backend/internal/domain"
	"urbancart-backend/pkg/utils"
)

// Auth rejects requests without a valid token and stores the claims in the
// request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the authenticated claims placed by Auth.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(domain.UserContextKey).(*utils.Claims)
	return claims, ok
}
