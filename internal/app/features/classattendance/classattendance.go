// internal/app/features/classattendance/classattendance.go
package classattendance

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/app/system/daywindow"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type attendanceRequest struct {
	ClassMember string    `json:"classMember"`
	Date        time.Time `json:"date"`
	models.ServiceCounters
}

// resolveMember loads the class member, scoped to the acting organization.
func (h *Handler) resolveMember(w http.ResponseWriter, r *http.Request, idHex string) (models.ClassMember, bool) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		respond.BadRequest(w, "Invalid class member id", "")
		return models.ClassMember{}, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classattendance.resolve")
	defer cancel()

	member, err := h.Members.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Class member not found", "")
			return models.ClassMember{}, false
		}
		h.Log.Error("classattendance: member lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return models.ClassMember{}, false
	}
	return member, true
}

// ServeList handles GET /class-attendance with optional classMemberId and
// date filters.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	memberHex := r.URL.Query().Get("classMemberId")
	if memberHex == "" {
		respond.BadRequest(w, "Missing required fields", "classMemberId is required")
		return
	}
	member, ok := h.resolveMember(w, r, memberHex)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "classattendance.list")
	defer cancel()

	records, err := h.Attendance.ListByMember(ctx, member.ID)
	if err != nil {
		h.Log.Error("classattendance: list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	if raw := r.URL.Query().Get("date"); raw != "" {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			respond.BadRequest(w, "Invalid date", "use YYYY-MM-DD")
			return
		}
		start, end := daywindow.Range(day)
		filtered := records[:0]
		for _, rec := range records {
			if !rec.Date.Before(start) && rec.Date.Before(end) {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}
	respond.JSON(w, http.StatusOK, records)
}

// loadRecord loads a record and checks its owning member belongs to the
// acting organization.
func (h *Handler) loadRecord(w http.ResponseWriter, r *http.Request) (models.ClassAttendance, bool) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "attendanceID"))
	if err != nil {
		respond.BadRequest(w, "Invalid attendance id", "")
		return models.ClassAttendance{}, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classattendance.load")
	defer cancel()

	record, err := h.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Attendance record not found", "")
			return models.ClassAttendance{}, false
		}
		h.Log.Error("classattendance: lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return models.ClassAttendance{}, false
	}
	if record.ClassMemberID == nil {
		respond.NotFound(w, "Attendance record not found", "")
		return models.ClassAttendance{}, false
	}
	if _, err := h.Members.GetByIDInOrg(ctx, *record.ClassMemberID, orgID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Attendance record not found", "")
			return models.ClassAttendance{}, false
		}
		h.Log.Error("classattendance: member lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return models.ClassAttendance{}, false
	}
	return record, true
}

// ServeRecord handles GET /class-attendance/{attendanceID}.
func (h *Handler) ServeRecord(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadRecord(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, record)
}

// HandleCreate handles POST /class-attendance. At most one report may exist
// per member per calendar day.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.ClassMember == "" {
		respond.BadRequest(w, "Missing required fields", "classMember is required")
		return
	}
	if field := req.FirstNegative(); field != "" {
		respond.BadRequest(w, "Invalid "+field, "counters must be non-negative")
		return
	}
	member, ok := h.resolveMember(w, r, req.ClassMember)
	if !ok {
		return
	}
	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "classattendance.create")
	defer cancel()

	exists, err := h.Attendance.ExistsForMemberOnDay(ctx, member.ID, date)
	if err != nil {
		h.Log.Error("classattendance: duplicate check failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if exists {
		respond.BadRequest(w, "Duplicate Entry", "An attendance record already exists for this day")
		return
	}

	memberID := member.ID
	record, err := h.Attendance.Create(ctx, models.ClassAttendance{
		ClassMemberID:   &memberID,
		Date:            date,
		ServiceCounters: req.ServiceCounters,
	})
	if err != nil {
		h.Log.Error("classattendance: create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusCreated, record)
}

// HandleUpdate handles PUT /class-attendance/{attendanceID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if field := req.FirstNegative(); field != "" {
		respond.BadRequest(w, "Invalid "+field, "counters must be non-negative")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classattendance.update")
	defer cancel()

	if _, err := h.Attendance.UpdateCounters(ctx, record.ID, req.ServiceCounters); err != nil {
		h.Log.Error("classattendance: update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	updated, err := h.Attendance.GetByID(ctx, record.ID)
	if err != nil {
		h.Log.Error("classattendance: reload failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /class-attendance/{attendanceID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	record, ok := h.loadRecord(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classattendance.delete")
	defer cancel()

	if _, err := h.Attendance.Delete(ctx, record.ID); err != nil {
		h.Log.Error("classattendance: delete failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Attendance record deleted successfully"})
}
