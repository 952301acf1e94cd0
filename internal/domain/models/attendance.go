// internal/domain/models/attendance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attendance is the whole-service head count for one date. At most one
// record may exist per organization per calendar day.
type Attendance struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdultCount     int                `bson:"adult_count" json:"adultCount"`
	MinorCount     int                `bson:"minor_count" json:"minorCount"`
	Date           time.Time          `bson:"date" json:"date"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
