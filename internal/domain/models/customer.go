// internal/domain/models/customer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a bookstore customer of one organization.
type Customer struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"first_name" json:"firstName"`
	LastName       string             `bson:"last_name" json:"lastName"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber    string             `bson:"phone_number" json:"phoneNumber"`
	Address        string             `bson:"address,omitempty" json:"address,omitempty"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
