// internal/app/features/classmembers/handler.go
package classmembers

import (
	classstore "github.com/dalemusser/parishhub/internal/app/store/classes"
	classmemberstore "github.com/dalemusser/parishhub/internal/app/store/classmembers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the class roster endpoints.
type Handler struct {
	Members *classmemberstore.Store
	Classes *classstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Members: classmemberstore.New(db),
		Classes: classstore.New(db),
		Log:     logger,
	}
}
