// internal/domain/models/lesson.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lesson is a study-material stock item held by one organization.
type Lesson struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	DateOfRegister time.Time          `bson:"date_of_register" json:"dateOfRegister"`
	Age            int                `bson:"age" json:"age"`
	Price          float64            `bson:"price" json:"price"`
	Quantity       int                `bson:"quantity" json:"quantity"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
