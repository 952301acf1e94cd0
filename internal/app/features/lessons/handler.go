// internal/app/features/lessons/handler.go
package lessons

import (
	lessonstore "github.com/dalemusser/parishhub/internal/app/store/lessons"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the lesson material inventory.
type Handler struct {
	Lessons *lessonstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Lessons: lessonstore.New(db), Log: logger}
}
