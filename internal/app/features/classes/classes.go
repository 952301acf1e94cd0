// internal/app/features/classes/classes.go
package classes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type classRequest struct {
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
}

// ServeList handles GET /classes.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "classes.list")
	defer cancel()

	classes, err := h.Classes.ListByOrganization(ctx, orgID)
	if err != nil {
		h.Log.Error("classes: list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, classes)
}

// ServeClass handles GET /classes/{id}.
func (h *Handler) ServeClass(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid class id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classes.get")
	defer cancel()

	class, err := h.Classes.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Class not found", "")
			return
		}
		h.Log.Error("classes: lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, class)
}

// HandleCreate handles POST /classes. The instructor must be a user of the
// acting organization.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	var req classRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.Name == "" || req.Instructor == "" {
		respond.BadRequest(w, "Missing required fields", "name and instructor are required")
		return
	}
	instructorID, err := primitive.ObjectIDFromHex(req.Instructor)
	if err != nil {
		respond.BadRequest(w, "Invalid instructor id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "classes.create")
	defer cancel()

	if _, err := h.Users.GetByIDInOrg(ctx, instructorID, orgID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Instructor not found", "")
			return
		}
		h.Log.Error("classes: instructor lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	class, err := h.Classes.Create(ctx, models.Class{
		Name:           req.Name,
		InstructorID:   instructorID,
		OrganizationID: orgID,
	})
	if err != nil {
		h.Log.Error("classes: create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	h.Log.Info("class created",
		zap.String("class_id", class.ID.Hex()),
		zap.String("organization_id", orgID.Hex()))
	respond.JSON(w, http.StatusCreated, class)
}

// HandleUpdate handles PUT /classes/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid class id", "")
		return
	}

	var req classRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classes.update")
	defer cancel()

	instructorID := primitive.NilObjectID
	if req.Instructor != "" {
		instructorID, err = primitive.ObjectIDFromHex(req.Instructor)
		if err != nil {
			respond.BadRequest(w, "Invalid instructor id", "")
			return
		}
		if _, err := h.Users.GetByIDInOrg(ctx, instructorID, orgID); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				respond.NotFound(w, "Instructor not found", "")
				return
			}
			h.Log.Error("classes: instructor lookup failed", zap.Error(err))
			respond.ServerError(w, "")
			return
		}
	}

	matched, err := h.Classes.Update(ctx, id, orgID, req.Name, instructorID)
	if err != nil {
		h.Log.Error("classes: update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if matched == 0 {
		respond.NotFound(w, "Class not found", "")
		return
	}

	class, err := h.Classes.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("classes: reload failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, class)
}

// HandleDelete handles DELETE /classes/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid class id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classes.delete")
	defer cancel()

	deleted, err := h.Classes.DeleteInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("classes: delete failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if deleted == 0 {
		respond.NotFound(w, "Class not found", "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Class deleted successfully"})
}
