// internal/app/features/customers/customers.go
package customers

import (
	"encoding/json"
	"errors"
	"net/http"

	customerstore "github.com/dalemusser/parishhub/internal/app/store/customers"
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type customerRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ServeList handles GET /customers.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "customers.list")
	defer cancel()

	customers, err := h.Customers.ListByOrganization(ctx, orgID)
	if err != nil {
		h.Log.Error("customers: list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, customers)
}

// ServeCustomer handles GET /customers/{id}.
func (h *Handler) ServeCustomer(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid customer id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "customers.get")
	defer cancel()

	cust, err := h.Customers.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Customer not found", "")
			return
		}
		h.Log.Error("customers: lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, cust)
}

// HandleCreate handles POST /customers. A duplicate email within the
// organization is rejected.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if strOr(req.FirstName) == "" || strOr(req.LastName) == "" {
		respond.BadRequest(w, "Missing required fields", "firstName and lastName are required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "customers.create")
	defer cancel()

	if email := strOr(req.Email); email != "" {
		exists, err := h.Customers.EmailExistsInOrg(ctx, orgID, email)
		if err != nil {
			h.Log.Error("customers: duplicate check failed", zap.Error(err))
			respond.ServerError(w, "")
			return
		}
		if exists {
			respond.BadRequest(w, "Duplicate Entry", "A customer with this email already exists")
			return
		}
	}

	cust, err := h.Customers.Create(ctx, models.Customer{
		FirstName:      strOr(req.FirstName),
		LastName:       strOr(req.LastName),
		Email:          strOr(req.Email),
		PhoneNumber:    strOr(req.PhoneNumber),
		Address:        strOr(req.Address),
		OrganizationID: orgID,
	})
	if err != nil {
		h.Log.Error("customers: create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusCreated, cust)
}

// HandleUpdate handles PUT /customers/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid customer id", "")
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "customers.update")
	defer cancel()

	matched, err := h.Customers.UpdateInOrg(ctx, id, orgID, customerstore.Update{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		h.Log.Error("customers: update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if matched == 0 {
		respond.NotFound(w, "Customer not found", "")
		return
	}

	cust, err := h.Customers.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("customers: reload failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, cust)
}

// HandleDelete handles DELETE /customers/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid customer id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "customers.delete")
	defer cancel()

	deleted, err := h.Customers.DeleteInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("customers: delete failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if deleted == 0 {
		respond.NotFound(w, "Customer not found", "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}
