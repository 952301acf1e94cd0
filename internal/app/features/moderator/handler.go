// internal/app/features/moderator/handler.go
package moderator

import (
	userreportstore "github.com/dalemusser/parishhub/internal/app/store/userreports"
	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the moderation endpoints: browsing the organization's users
// and filing reports against them.
type Handler struct {
	Users   *userstore.Store
	Reports *userreportstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   userstore.New(db),
		Reports: userreportstore.New(db),
		Log:     logger,
	}
}
