// internal/app/features/classes/attendance.go
package classes

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

// resolveClass loads the class named in the route, scoped to the acting
// organization. A class outside the organization reads as not found.
func (h *Handler) resolveClass(w http.ResponseWriter, r *http.Request) (models.Class, bool) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid class id", "")
		return models.Class{}, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classes.resolve")
	defer cancel()

	class, err := h.Classes.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Class not found", "")
			return models.Class{}, false
		}
		h.Log.Error("classes: lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return models.Class{}, false
	}
	return class, true
}

type attendanceRequest struct {
	Date time.Time `json:"date"`
	models.ServiceCounters
}

// ServeAttendance handles GET /classes/{id}/attendance. An optional ?date=
// narrows the list to one calendar day.
func (h *Handler) ServeAttendance(w http.ResponseWriter, r *http.Request) {
	class, ok := h.resolveClass(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "classes.attendance.list")
	defer cancel()

	if raw := r.URL.Query().Get("date"); raw != "" {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			respond.BadRequest(w, "Invalid date", "use YYYY-MM-DD")
			return
		}
		start, end := daywindow.Range(day)
		records, err := h.Attendance.ListByClassInRange(ctx, class.ID, start, end.Add(-time.Nanosecond))
		if err != nil {
			h.Log.Error("classes: attendance list failed", zap.Error(err))
			respond.ServerError(w, "")
			return
		}
		respond.JSON(w, http.StatusOK, records)
		return
	}

	records, err := h.Attendance.ListByClass(ctx, class.ID)
	if err != nil {
		h.Log.Error("classes: attendance list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, records)
}

type attendanceByDateResponse struct {
	Class      models.Class             `json:"class"`
	Date       string                   `json:"date"`
	Count      int                      `json:"count"`
	Attendance []models.ClassAttendance `json:"attendance"`
}

// ServeAttendanceByDate handles GET /classes/{id}/attendance/date/{date}.
func (h *Handler) ServeAttendanceByDate(w http.ResponseWriter, r *http.Request) {
	class, ok := h.resolveClass(w, r)
	if !ok {
		return
	}
	day, err := time.Parse(dateLayout, chi.URLParam(r, "date"))
	if err != nil {
		respond.BadRequest(w, "Invalid date", "use YYYY-MM-DD")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "classes.attendance.bydate")
	defer cancel()

	start, end := daywindow.Range(day)
	records, err := h.Attendance.ListByClassInRange(ctx, class.ID, start, end.Add(-time.Nanosecond))
	if err != nil {
		h.Log.Error("classes: attendance list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	respond.JSON(w, http.StatusOK, attendanceByDateResponse{
		Class:      class,
		Date:       day.Format(dateLayout),
		Count:      len(records),
		Attendance: records,
	})
}

// HandleCreateAttendance handles POST /classes/{id}/attendance. At most one
// report may exist per class per calendar day.
func (h *Handler) HandleCreateAttendance(w http.ResponseWriter, r *http.Request) {
	class, ok := h.resolveClass(w, r)
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
	date := req.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "classes.attendance.create")
	defer cancel()

	exists, err := h.Attendance.ExistsForClassOnDay(ctx, class.ID, date)
	if err != nil {
		h.Log.Error("classes: attendance duplicate check failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if exists {
		respond.BadRequest(w, "Duplicate Entry", "An attendance record already exists for this day")
		return
	}

	classID := class.ID
	record, err := h.Attendance.Create(ctx, models.ClassAttendance{
		ClassID:         &classID,
		Date:            date,
		ServiceCounters: req.ServiceCounters,
	})
	if err != nil {
		h.Log.Error("classes: attendance create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusCreated, record)
}

// HandleUpdateAttendance handles PUT /classes/{id}/attendance/{attendanceID}.
// Only the counters can change; the date is fixed at creation.
func (h *Handler) HandleUpdateAttendance(w http.ResponseWriter, r *http.Request) {
	class, ok := h.resolveClass(w, r)
	if !ok {
		return
	}
	attID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "attendanceID"))
	if err != nil {
		respond.BadRequest(w, "Invalid attendance id", "")
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classes.attendance.update")
	defer cancel()

	record, err := h.Attendance.GetByID(ctx, attID)
	if err != nil || record.ClassID == nil || *record.ClassID != class.ID {
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Error("classes: attendance lookup failed", zap.Error(err))
			respond.ServerError(w, "")
			return
		}
		respond.NotFound(w, "Attendance record not found", "")
		return
	}

	if _, err := h.Attendance.UpdateCounters(ctx, attID, req.ServiceCounters); err != nil {
		h.Log.Error("classes: attendance update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	updated, err := h.Attendance.GetByID(ctx, attID)
	if err != nil {
		h.Log.Error("classes: attendance reload failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// HandleDeleteAttendance handles DELETE /classes/{id}/attendance/{attendanceID}.
func (h *Handler) HandleDeleteAttendance(w http.ResponseWriter, r *http.Request) {
	class, ok := h.resolveClass(w, r)
	if !ok {
		return
	}
	attID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "attendanceID"))
	if err != nil {
		respond.BadRequest(w, "Invalid attendance id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "classes.attendance.delete")
	defer cancel()

	record, err := h.Attendance.GetByID(ctx, attID)
	if err != nil || record.ClassID == nil || *record.ClassID != class.ID {
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Error("classes: attendance lookup failed", zap.Error(err))
			respond.ServerError(w, "")
			return
		}
		respond.NotFound(w, "Attendance record not found", "")
		return
	}

	if _, err := h.Attendance.Delete(ctx, attID); err != nil {
		h.Log.Error("classes: attendance delete failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Attendance record deleted successfully"})
}
