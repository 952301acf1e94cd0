// internal/app/features/communion/handler.go
package communion

import (
	communionattendancestore "github.com/dalemusser/parishhub/internal/app/store/communionattendance"
	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the communion scan records: who was scanned present, by
// whom, and when.
type Handler struct {
	Records *communionattendancestore.Store
	Users   *userstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Records: communionattendancestore.New(db),
		Users:   userstore.New(db),
		Log:     logger,
	}
}
