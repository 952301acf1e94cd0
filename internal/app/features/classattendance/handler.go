// internal/app/features/classattendance/handler.go
package classattendance

import (
	classattendancestore "github.com/dalemusser/parishhub/internal/app/store/classattendance"
	classmemberstore "github.com/dalemusser/parishhub/internal/app/store/classmembers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the member-keyed attendance reports. Where the class routes
// record one report per class per day, these record one per class member per
// day.
type Handler struct {
	Members    *classmemberstore.Store
	Attendance *classattendancestore.Store
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Members:    classmemberstore.New(db),
		Attendance: classattendancestore.New(db),
		Log:        logger,
	}
}
