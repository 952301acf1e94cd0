// internal/app/features/instructors/handler.go
package instructors

import (
	"context"

	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ImageUploader stores a profile image and returns its hosted URL.
// *imagestore.Client satisfies it.
type ImageUploader interface {
	Upload(ctx context.Context, image []byte) (string, error)
}

// Handler manages instructor accounts, which are users carrying the
// instructor role plus a mandatory profile image.
type Handler struct {
	Users  *userstore.Store
	Images ImageUploader
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, images ImageUploader, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Images: images, Log: logger}
}
