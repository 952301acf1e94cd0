// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents every account in the system: admins, clerks, regular
// attendees, instructors, and plain members. The role decides which fields
// are mandatory.
//
// NOTE:
//   - Email and PasswordHash are optional only for regular users, who are
//     registered by a clerk and never log in themselves.
//   - Email uniqueness is global, not per organization.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName       string             `bson:"first_name" json:"firstName"`
	MiddleName      string             `bson:"middle_name,omitempty" json:"middleName,omitempty"`
	LastName        string             `bson:"last_name" json:"lastName"`
	Email           string             `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber     string             `bson:"phone_number" json:"phoneNumber"`
	PasswordHash    string             `bson:"password_hash,omitempty" json:"-"`
	Role            Role               `bson:"role" json:"role"`
	OrganizationID  primitive.ObjectID `bson:"organization_id" json:"organization"`
	ProfileImageURL string             `bson:"profile_image_url,omitempty" json:"profileImageUrl,omitempty"`
	Address         string             `bson:"address,omitempty" json:"address,omitempty"`
	Member          bool               `bson:"member" json:"member"`
	Gender          string             `bson:"gender,omitempty" json:"gender,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// FullName joins the name parts, skipping an empty middle name.
func (u User) FullName() string {
	if u.MiddleName == "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName + " " + u.MiddleName + " " + u.LastName
}

// IsInstructor reports whether the user carries instructor privileges.
func (u User) IsInstructor() bool {
	return u.Role == RoleInstructor
}
