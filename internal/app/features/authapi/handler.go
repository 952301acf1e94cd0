// internal/app/features/authapi/handler.go
package authapi

import (
	organizationstore "github.com/dalemusser/parishhub/internal/app/store/organizations"
	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"github.com/dalemusser/parishhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the pre-auth endpoints: first-admin registration and login.
type Handler struct {
	Users  *userstore.Store
	Orgs   *organizationstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Orgs:   organizationstore.New(db),
		Tokens: tokens,
		Log:    logger,
	}
}
