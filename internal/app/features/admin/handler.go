// internal/app/features/admin/handler.go
package admin

import (
	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"github.com/dalemusser/parishhub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin-only user management endpoints. Every lookup is
// scoped to the acting admin's organization.
type Handler struct {
	Users    *userstore.Store
	Mail     *mailer.Mailer
	SiteName string
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, mail *mailer.Mailer, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Mail:     mail,
		SiteName: siteName,
		Log:      logger,
	}
}
