package v1

import (
	"net/http"

	"urbancart-backend/internal/delivery/http/middleware"
	"urbancart-backend/pkg/utils"

	"github.com/goccy/go-json"
)

// protected wraps a handler with token authentication.
func protected(h http.HandlerFunc) http.Handler {
	return middleware.Auth(h)
}

// adminOnly wraps a handler with authentication plus the admin gate.
func adminOnly(h http.HandlerFunc) http.Handler {
	return middleware.Auth(middleware.AdminOnly(h))
}

// claims returns the authenticated claims. Only valid behind Auth.
func claims(r *http.Request) *utils.Claims {
	c, _ := middleware.ClaimsFromContext(r.Context())
	return c
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
