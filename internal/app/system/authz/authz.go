// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/parishhub/internal/app/system/auth"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserOrgID returns the current user's organization ID, or NilObjectID when
// no user is present. Every tenant-scoped query filters on this value.
func UserOrgID(r *http.Request) primitive.ObjectID {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID
	}
	return user.OrganizationID
}

// RequireRole guards a route group: the request must carry an authenticated
// user (401 otherwise) whose role is one of the allowed set (403 otherwise).
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	set := make(map[models.Role]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.CurrentUser(r)
			if !ok {
				respond.Unauthorized(w, "Please authenticate", "no authenticated user")
				return
			}
			if _, has := set[user.Role]; !has {
				respond.Forbidden(w, "Access denied. Insufficient permissions.", "role not permitted for this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission guards a route group on a single capability rather than
// a role list. pick selects the capability to check, e.g.
// RequirePermission(func(c Capabilities) bool { return c.ManageUsers }).
func RequirePermission(pick func(Capabilities) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.CurrentUser(r)
			if !ok {
				respond.Unauthorized(w, "Please authenticate", "no authenticated user")
				return
			}
			if !pick(Can(user.Role)) {
				respond.Forbidden(w, "Access denied. Insufficient permissions.", "missing required permission")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
