// internal/app/features/attendance/attendance.go
package attendance

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type attendanceRequest struct {
	AdultCount *int       `json:"adultCount"`
	MinorCount *int       `json:"minorCount"`
	Date       *time.Time `json:"date"`
}

func (req attendanceRequest) invalidField() string {
	switch {
	case req.AdultCount != nil && *req.AdultCount < 0:
		return "adultCount"
	case req.MinorCount != nil && *req.MinorCount < 0:
		return "minorCount"
	}
	return ""
}

// ServeList handles GET /attendance.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "attendance.list")
	defer cancel()

	records, err := h.Attendance.ListByOrganization(ctx, orgID)
	if err != nil {
		h.Log.Error("attendance: list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, records)
}

// ServeRecord handles GET /attendance/{id}.
func (h *Handler) ServeRecord(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid attendance id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "attendance.get")
	defer cancel()

	record, err := h.Attendance.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Attendance record not found", "")
			return
		}
		h.Log.Error("attendance: lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, record)
}

// HandleCreate handles POST /attendance. One headcount per organization per
// calendar day.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.AdultCount == nil || req.MinorCount == nil {
		respond.BadRequest(w, "Missing required fields", "adultCount and minorCount are required")
		return
	}
	if field := req.invalidField(); field != "" {
		respond.BadRequest(w, "Invalid "+field, "must be non-negative")
		return
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "attendance.create")
	defer cancel()

	exists, err := h.Attendance.ExistsOnDay(ctx, orgID, date)
	if err != nil {
		h.Log.Error("attendance: duplicate check failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if exists {
		respond.BadRequest(w, "Duplicate Entry", "attendance already recorded for this day")
		return
	}

	created, err := h.Attendance.Create(ctx, models.Attendance{
		AdultCount:     *req.AdultCount,
		MinorCount:     *req.MinorCount,
		Date:           date,
		OrganizationID: orgID,
	})
	if err != nil {
		h.Log.Error("attendance: create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /attendance/{id}. Only the counts may change.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid attendance id", "")
		return
	}

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.AdultCount == nil || req.MinorCount == nil {
		respond.BadRequest(w, "Missing required fields", "adultCount and minorCount are required")
		return
	}
	if field := req.invalidField(); field != "" {
		respond.BadRequest(w, "Invalid "+field, "must be non-negative")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "attendance.update")
	defer cancel()

	matched, err := h.Attendance.UpdateCountsInOrg(ctx, id, orgID, *req.AdultCount, *req.MinorCount)
	if err != nil {
		h.Log.Error("attendance: update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if matched == 0 {
		respond.NotFound(w, "Attendance record not found", "")
		return
	}

	record, err := h.Attendance.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("attendance: reload failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, record)
}

// HandleDelete handles DELETE /attendance/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid attendance id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "attendance.delete")
	defer cancel()

	deleted, err := h.Attendance.DeleteInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("attendance: delete failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if deleted == 0 {
		respond.NotFound(w, "Attendance record not found", "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Attendance record deleted successfully"})
}
