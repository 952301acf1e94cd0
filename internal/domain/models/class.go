// internal/domain/models/class.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Class is a study class within one organization, led by one instructor.
type Class struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	InstructorID   primitive.ObjectID `bson:"instructor_id" json:"instructor"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ClassMember is a roster entry for a class. Members are recorded by name;
// they do not need their own user account.
type ClassMember struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName      string             `bson:"first_name" json:"firstName"`
	SecondName     string             `bson:"second_name" json:"secondName"`
	LastName       string             `bson:"last_name" json:"lastName"`
	ClassID        primitive.ObjectID `bson:"class_id" json:"classId"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
