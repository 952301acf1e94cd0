// internal/domain/models/userreport.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report statuses.
const (
	ReportPending  = "pending"
	ReportReviewed = "reviewed"
	ReportResolved = "resolved"
)

// UserReport is a moderator complaint about a user. Reports are keyed by the
// two user ids only; the organization is implied by the reported user.
type UserReport struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReportedByID   primitive.ObjectID `bson:"reported_by_id" json:"reportedBy"`
	ReportedUserID primitive.ObjectID `bson:"reported_user_id" json:"reportedUser"`
	Reason         string             `bson:"reason" json:"reason"`
	Status         string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
