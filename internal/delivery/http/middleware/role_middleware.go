package middleware

import (
	"net/http"
	"slices"

	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/pkg/response"
)

// RequireRole only lets through users whose role is one of allowed.
// It must run after AuthMiddleware.Authenticate.
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "")
				return
			}

			if !slices.Contains(allowed, user.Role) {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}
