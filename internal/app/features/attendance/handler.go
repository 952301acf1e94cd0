// internal/app/features/attendance/handler.go
package attendance

import (
	attendancestore "github.com/dalemusser/parishhub/internal/app/store/attendance"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves whole-service headcount records.
type Handler struct {
	Attendance *attendancestore.Store
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Attendance: attendancestore.New(db), Log: logger}
}
