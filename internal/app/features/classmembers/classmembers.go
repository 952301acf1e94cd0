// internal/app/features/classmembers/classmembers.go
package classmembers

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

type memberRequest struct {
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	LastName   string `json:"lastName"`
	Class      string `json:"class"`
}

// ServeList handles GET /class-members. An optional ?classId= narrows the
// list to one class roster.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "classmembers.list")
	defer cancel()

	if raw := r.URL.Query().Get("classId"); raw != "" {
		classID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.BadRequest(w, "Invalid class id", "")
			return
		}
		members, err := h.Members.ListByClass(ctx, orgID, classID)
		if err != nil {
			h.Log.Error("classmembers: list failed", zap.Error(err))
			respond.ServerError(w, "")
			return
		}
		respond.JSON(w, http.StatusOK, members)
		return
	}

	members, err := h.Members.ListByOrganization(ctx, orgID)
	if err != nil {
		h.Log.Error("classmembers: list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, members)
}

// ServeMember handles GET /class-members/{id}.
func (h *Handler) ServeMember(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid class member id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classmembers.get")
	defer cancel()

	member, err := h.Members.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Class member not found", "")
			return
		}
		h.Log.Error("classmembers: lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, member)
}

// HandleCreate handles POST /class-members. The class must belong to the
// acting organization.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Class == "" {
		respond.BadRequest(w, "Missing required fields", "firstName, lastName and class are required")
		return
	}
	classID, err := primitive.ObjectIDFromHex(req.Class)
	if err != nil {
		respond.BadRequest(w, "Invalid class id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "classmembers.create")
	defer cancel()

	if _, err := h.Classes.GetByIDInOrg(ctx, classID, orgID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Class not found", "")
			return
		}
		h.Log.Error("classmembers: class lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	member, err := h.Members.Create(ctx, models.ClassMember{
		FirstName:      req.FirstName,
		SecondName:     req.SecondName,
		LastName:       req.LastName,
		ClassID:        classID,
		OrganizationID: orgID,
	})
	if err != nil {
		h.Log.Error("classmembers: create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusCreated, member)
}

// HandleUpdate handles PUT /class-members/{id}. Only the name fields change.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid class member id", "")
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classmembers.update")
	defer cancel()

	matched, err := h.Members.Update(ctx, id, orgID, req.FirstName, req.SecondName, req.LastName)
	if err != nil {
		h.Log.Error("classmembers: update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if matched == 0 {
		respond.NotFound(w, "Class member not found", "")
		return
	}

	member, err := h.Members.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("classmembers: reload failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, member)
}

// HandleDelete handles DELETE /class-members/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid class member id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classmembers.delete")
	defer cancel()

	deleted, err := h.Members.DeleteInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("classmembers: delete failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if deleted == 0 {
		respond.NotFound(w, "Class member not found", "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Class member deleted successfully"})
}
