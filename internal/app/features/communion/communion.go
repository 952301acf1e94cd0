// internal/app/features/communion/communion.go
package communion

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/dalemusser/parishhub/internal/app/system/auth"
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/app/system/daywindow"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// parseDateParam accepts either a bare date or a full RFC 3339 timestamp.
func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// latestDayRecords finds the most recent scan day and returns its records.
// A nil slice means the organization has no scans yet.
func (h *Handler) latestDayRecords(ctx context.Context, orgID primitive.ObjectID) ([]models.CommunionAttendance, error) {
	newest, err := h.Records.Latest(ctx, orgID, 1)
	if err != nil {
		return nil, err
	}
	if len(newest) == 0 {
		return nil, nil
	}
	start, end := daywindow.Range(newest[0].ScannedAt)
	return h.Records.ListInRange(ctx, orgID, start, end.Add(-time.Millisecond))
}

// ServeLatest handles GET /communion-attendance/latest: every record of the
// most recent scan day.
func (h *Handler) ServeLatest(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "communion.latest")
	defer cancel()

	records, err := h.latestDayRecords(ctx, orgID)
	if err != nil {
		h.Log.Error("communion: latest lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if records == nil {
		records = []models.CommunionAttendance{}
	}
	respond.JSON(w, http.StatusOK, records)
}

// ServeRange handles GET /communion-attendance/range?start=&end=.
func (h *Handler) ServeRange(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	startRaw, endRaw := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if startRaw == "" || endRaw == "" {
		respond.BadRequest(w, "Start and end dates are required", "")
		return
	}
	start, err := parseDateParam(startRaw)
	if err != nil {
		respond.BadRequest(w, "Invalid date", "use YYYY-MM-DD")
		return
	}
	end, err := parseDateParam(endRaw)
	if err != nil {
		respond.BadRequest(w, "Invalid date", "use YYYY-MM-DD")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "communion.range")
	defer cancel()

	records, err := h.Records.ListInRange(ctx, orgID, start, end)
	if err != nil {
		h.Log.Error("communion: range lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, records)
}

type statsResponse struct {
	AttendanceRate    float64    `json:"attendanceRate"`
	LastScanDate      *time.Time `json:"lastScanDate"`
	TotalParticipants int        `json:"totalParticipants"`
}

// ServeLatestStats handles GET /communion-attendance/latest/stats: the
// attendance rate of the most recent scan day against the organization's
// user count.
func (h *Handler) ServeLatestStats(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "communion.stats")
	defer cancel()

	records, err := h.latestDayRecords(ctx, orgID)
	if err != nil {
		h.Log.Error("communion: stats lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if len(records) == 0 {
		respond.JSON(w, http.StatusOK, statsResponse{})
		return
	}

	unique := make(map[primitive.ObjectID]struct{}, len(records))
	lastScan := records[0].ScannedAt
	for _, rec := range records {
		unique[rec.UserID] = struct{}{}
		if rec.ScannedAt.After(lastScan) {
			lastScan = rec.ScannedAt
		}
	}

	totalUsers, err := h.Users.CountByOrganization(ctx, orgID)
	if err != nil {
		h.Log.Error("communion: user count failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	rate := 0.0
	if totalUsers > 0 {
		rate = math.Round(float64(len(unique))/float64(totalUsers)*10000) / 100
	}

	respond.JSON(w, http.StatusOK, statsResponse{
		AttendanceRate:    rate,
		LastScanDate:      &lastScan,
		TotalParticipants: len(unique),
	})
}

// ServeDailyStats handles GET /communion-attendance/stats/daily?start=&end=:
// per-day scan counts for charting.
func (h *Handler) ServeDailyStats(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	start, err := parseDateParam(r.URL.Query().Get("start"))
	if err != nil {
		respond.BadRequest(w, "Invalid date", "use YYYY-MM-DD")
		return
	}
	end, err := parseDateParam(r.URL.Query().Get("end"))
	if err != nil {
		respond.BadRequest(w, "Invalid date", "use YYYY-MM-DD")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "communion.stats.daily")
	defer cancel()

	stats, err := h.Records.StatsByDay(ctx, orgID, start, end)
	if err != nil {
		h.Log.Error("communion: daily stats failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}

type scanRequest struct {
	User string `json:"user"`
}

// HandleScan handles POST /communion-attendance/scan: record that the named
// user was scanned present by the caller. A second scan of the same user on
// the same day is skipped, not an error.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w, "Please authenticate", "")
		return
	}
	orgID := authz.UserOrgID(r)

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.User == "" {
		respond.BadRequest(w, "Missing required fields", "user is required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.User)
	if err != nil {
		respond.BadRequest(w, "Invalid user id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "communion.scan")
	defer cancel()

	if _, err := h.Users.GetByIDInOrg(ctx, userID, orgID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "User not found", "")
			return
		}
		h.Log.Error("communion: scanned user lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	now := time.Now().UTC()
	exists, err := h.Records.ExistsForUserOnDay(ctx, userID, now)
	if err != nil {
		h.Log.Error("communion: duplicate check failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if exists {
		respond.JSON(w, http.StatusOK, map[string]string{"message": "Already recorded for today"})
		return
	}

	record, err := h.Records.Create(ctx, models.CommunionAttendance{
		UserID:         userID,
		OrganizationID: orgID,
		ScannedByID:    caller.ID,
		ScannedAt:      now,
	})
	if err != nil {
		h.Log.Error("communion: create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusCreated, record)
}
