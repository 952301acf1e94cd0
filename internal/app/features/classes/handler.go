// internal/app/features/classes/handler.go
package classes

import (
	classattendancestore "github.com/dalemusser/parishhub/internal/app/store/classattendance"
	classstore "github.com/dalemusser/parishhub/internal/app/store/classes"
	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves class CRUD and the per-class attendance reports nested
// under each class.
type Handler struct {
	Classes    *classstore.Store
	Users      *userstore.Store
	Attendance *classattendancestore.Store
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Classes:    classstore.New(db),
		Users:      userstore.New(db),
		Attendance: classattendancestore.New(db),
		Log:        logger,
	}
}
