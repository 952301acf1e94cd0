// internal/app/features/customers/handler.go
package customers

import (
	customerstore "github.com/dalemusser/parishhub/internal/app/store/customers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the customer records of the bookshop side of a parish.
type Handler struct {
	Customers *customerstore.Store
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Customers: customerstore.New(db), Log: logger}
}
