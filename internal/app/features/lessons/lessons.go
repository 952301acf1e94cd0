// internal/app/features/lessons/lessons.go
package lessons

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	lessonstore "github.com/dalemusser/parishhub/internal/app/store/lessons"
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type lessonRequest struct {
	Name           *string    `json:"name"`
	DateOfRegister *time.Time `json:"dateOfRegister"`
	Age            *int       `json:"age"`
	Price          *float64   `json:"price"`
	Quantity       *int       `json:"quantity"`
}

// validate rejects negative numbers field by field.
func (req lessonRequest) validate() string {
	switch {
	case req.Age != nil && *req.Age < 0:
		return "age"
	case req.Price != nil && *req.Price < 0:
		return "price"
	case req.Quantity != nil && *req.Quantity < 0:
		return "quantity"
	}
	return ""
}

// ServeList handles GET /lessons.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "lessons.list")
	defer cancel()

	lessons, err := h.Lessons.ListByOrganization(ctx, orgID)
	if err != nil {
		h.Log.Error("lessons: list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, lessons)
}

// ServeLesson handles GET /lessons/{id}.
func (h *Handler) ServeLesson(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid lesson id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "lessons.get")
	defer cancel()

	lesson, err := h.Lessons.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Lesson not found", "")
			return
		}
		h.Log.Error("lessons: lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, lesson)
}

// HandleCreate handles POST /lessons.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	var req lessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.Name == nil || *req.Name == "" {
		respond.BadRequest(w, "Missing required fields", "name is required")
		return
	}
	if field := req.validate(); field != "" {
		respond.BadRequest(w, "Invalid "+field, "must be non-negative")
		return
	}

	lesson := models.Lesson{Name: *req.Name, OrganizationID: orgID}
	if req.DateOfRegister != nil {
		lesson.DateOfRegister = *req.DateOfRegister
	}
	if req.Age != nil {
		lesson.Age = *req.Age
	}
	if req.Price != nil {
		lesson.Price = *req.Price
	}
	if req.Quantity != nil {
		lesson.Quantity = *req.Quantity
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "lessons.create")
	defer cancel()

	created, err := h.Lessons.Create(ctx, lesson)
	if err != nil {
		h.Log.Error("lessons: create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /lessons/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid lesson id", "")
		return
	}

	var req lessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if field := req.validate(); field != "" {
		respond.BadRequest(w, "Invalid "+field, "must be non-negative")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "lessons.update")
	defer cancel()

	matched, err := h.Lessons.UpdateInOrg(ctx, id, orgID, lessonstore.Update{
		Name:     req.Name,
		Age:      req.Age,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.Log.Error("lessons: update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if matched == 0 {
		respond.NotFound(w, "Lesson not found", "")
		return
	}

	lesson, err := h.Lessons.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("lessons: reload failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, lesson)
}

// HandleDelete handles DELETE /lessons/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid lesson id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "lessons.delete")
	defer cancel()

	deleted, err := h.Lessons.DeleteInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("lessons: delete failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if deleted == 0 {
		respond.NotFound(w, "Lesson not found", "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Lesson deleted successfully"})
}
