package middleware

import (
	"net/http"

	"clinic-backend/internal/domain/entity"
	"clinic-backend/pkg/response"
)

// RequireCapability gates an endpoint on a named capability instead of a role
// comparison. The caller's role is read from context, set by Authenticate.
// Passing several capabilities grants access when the role carries any of
// them.
func RequireCapability(capabilities ...entity.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, c := range capabilities {
				if entity.RoleCan(roleID, c) {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}
