package testutil

import (
	"net/http"

	"github.com/dalemusser/parishhub/internal/app/system/auth"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithUser injects a user into the request context, simulating what the
// authenticate middleware does after verifying a bearer token.
func WithUser(r *http.Request, u *models.User) *http.Request {
	return auth.WithUser(r, u)
}

// AdminUser returns an in-memory admin for the given organization.
func AdminUser(orgID primitive.ObjectID) *models.User {
	return &models.User{
		ID:             primitive.NewObjectID(),
		FirstName:      "Test",
		LastName:       "Admin",
		Email:          "admin@test.com",
		Role:           models.RoleAdmin,
		OrganizationID: orgID,
	}
}

// ClerkUser returns an in-memory clerk for the given organization.
func ClerkUser(orgID primitive.ObjectID) *models.User {
	return &models.User{
		ID:             primitive.NewObjectID(),
		FirstName:      "Test",
		LastName:       "Clerk",
		Email:          "clerk@test.com",
		Role:           models.RoleClerk,
		OrganizationID: orgID,
	}
}

// InstructorUser returns an in-memory instructor for the given organization.
func InstructorUser(orgID primitive.ObjectID) *models.User {
	return &models.User{
		ID:             primitive.NewObjectID(),
		FirstName:      "Test",
		LastName:       "Instructor",
		Email:          "instructor@test.com",
		Role:           models.RoleInstructor,
		OrganizationID: orgID,
	}
}

// RegularUser returns an in-memory regular user for the given organization.
func RegularUser(orgID primitive.ObjectID) *models.User {
	return &models.User{
		ID:             primitive.NewObjectID(),
		FirstName:      "Test",
		LastName:       "Regular",
		Email:          "regular@test.com",
		Role:           models.RoleRegular,
		OrganizationID: orgID,
	}
}
