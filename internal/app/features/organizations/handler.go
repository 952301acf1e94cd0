// internal/app/features/organizations/handler.go
package organizations

import (
	organizationstore "github.com/dalemusser/parishhub/internal/app/store/organizations"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the organization endpoints. Listing and creation are public
// so a new parish can be set up before any account exists; mutation requires
// the manage-organization capability.
type Handler struct {
	Orgs *organizationstore.Store
	Log  *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Orgs: organizationstore.New(db), Log: logger}
}
