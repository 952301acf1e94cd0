package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey int

const currentUserKey ctxKey = iota

// UserLookup resolves a user by ID. The authenticate middleware uses it to
// load the live account record, so role or organization changes take effect
// on the next request rather than at token expiry.
type UserLookup func(ctx context.Context, id primitive.ObjectID) (*models.User, error)

// CurrentUser returns the authenticated user from the request context.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok
}

// WithUser returns a copy of the request with the user injected into its
// context. Handlers under Authenticate rely on this; tests use it directly.
func WithUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// BearerToken extracts the token from an Authorization: Bearer header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

// Authenticate verifies the bearer token and loads the user into the request
// context. Requests without a valid token are rejected with 401 before any
// handler runs.
func Authenticate(tm *TokenManager, lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				respond.Unauthorized(w, "Unauthorized", "missing bearer token")
				return
			}

			claims, err := tm.Verify(token)
			if err != nil {
				respond.Unauthorized(w, "Unauthorized", "invalid or expired token")
				return
			}

			id, err := primitive.ObjectIDFromHex(claims.Subject)
			if err != nil {
				respond.Unauthorized(w, "Unauthorized", "invalid token subject")
				return
			}

			user, err := lookup(r.Context(), id)
			if err != nil || user == nil {
				respond.Unauthorized(w, "Unauthorized", "account not found")
				return
			}

			next.ServeHTTP(w, WithUser(r, user))
		})
	}
}
