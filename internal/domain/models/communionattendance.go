// internal/domain/models/communionattendance.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommunionAttendance records that a user was scanned present at one of the
// organization's communion events.
type CommunionAttendance struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization"`
	ScannedByID    primitive.ObjectID `bson:"scanned_by_id" json:"scannedBy"`
	ScannedAt      time.Time          `bson:"scanned_at" json:"scannedAt"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
