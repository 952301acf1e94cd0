// internal/app/features/organizations/organizations.go
package organizations

import (
	"encoding/json"
	"errors"
	"net/http"

	organizationstore "github.com/dalemusser/parishhub/internal/app/store/organizations"
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/sanitize"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeList handles GET /organizations. Public: the registration form needs
// the list before any account exists.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "organizations.list")
	defer cancel()

	orgs, err := h.Orgs.List(ctx)
	if err != nil {
		h.Log.Error("organizations: list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, orgs)
}

// ServeOrganization handles GET /organizations/{id}.
func (h *Handler) ServeOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid organization id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "organizations.get")
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Organization not found", "")
			return
		}
		h.Log.Error("organizations: lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, org)
}

type organizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Website     string `json:"website"`
}

// HandleCreate handles POST /organizations. Public: this is the first step of
// setting up a new parish, before its admin registers.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.Name == "" {
		respond.BadRequest(w, "Missing required fields", "name is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "organizations.create")
	defer cancel()

	org, err := h.Orgs.Create(ctx, models.Organization{
		Name:        req.Name,
		Description: sanitize.Text(req.Description),
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Website:     req.Website,
	})
	if err != nil {
		if errors.Is(err, organizationstore.ErrDuplicateOrganization) {
			respond.BadRequest(w, "Duplicate Entry", "An organization with this name already exists")
			return
		}
		h.Log.Error("organizations: create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	h.Log.Info("organization created", zap.String("organization_id", org.ID.Hex()))
	respond.JSON(w, http.StatusCreated, org)
}

// HandleUpdate handles PUT /organizations/{id}. The caller may only update
// their own organization.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid organization id", "")
		return
	}
	if id != authz.UserOrgID(r) {
		respond.NotFound(w, "Organization not found", "")
		return
	}

	var req organizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "organizations.update")
	defer cancel()

	err = h.Orgs.Update(ctx, id, models.Organization{
		Name:        req.Name,
		Description: sanitize.Text(req.Description),
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Website:     req.Website,
	})
	if err != nil {
		if errors.Is(err, organizationstore.ErrDuplicateOrganization) {
			respond.BadRequest(w, "Duplicate Entry", "An organization with this name already exists")
			return
		}
		h.Log.Error("organizations: update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		h.Log.Error("organizations: reload failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, org)
}

// HandleDelete handles DELETE /organizations/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid organization id", "")
		return
	}
	if id != authz.UserOrgID(r) {
		respond.NotFound(w, "Organization not found", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "organizations.delete")
	defer cancel()

	deleted, err := h.Orgs.Delete(ctx, id)
	if err != nil {
		h.Log.Error("organizations: delete failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if deleted == 0 {
		respond.NotFound(w, "Organization not found", "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Organization deleted successfully"})
}
