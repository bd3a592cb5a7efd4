package middleware

import (
	"fmt"
	"net/http"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/response"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/authz"
)

// RequirePermission checks the session user's role against the casbin policy
func RequirePermission(authorizer *authz.Authorizer, permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			allowed, err := authorizer.Authorize(sess.User.Role, permission)
			if err != nil {
				response.InternalServerError(w, "Failed to evaluate permissions")
				return
			}
			if !allowed {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, sess.User.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
