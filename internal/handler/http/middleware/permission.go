package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/remitdesk/backoffice-go/internal/domain/user"
	"github.com/remitdesk/backoffice-go/internal/handler/http/response"
)

// RequirePermission gates a route on a capability string carried in the
// token's permissions claim. Roles are resolved to permissions once at token
// issue; routes never compare role names.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !claimsHavePermission(claims, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func claimsHavePermission(claims map[string]interface{}, permission user.Permission) bool {
	raw, ok := claims["permissions"].([]interface{})
	if !ok {
		return false
	}
	for _, p := range raw {
		if s, ok := p.(string); ok && s == string(permission) {
			return true
		}
	}
	return false
}
