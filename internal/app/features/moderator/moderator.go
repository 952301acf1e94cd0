// internal/app/features/moderator/moderator.go
package moderator

import (
	"encoding/json"
	"errors"
	"net/http"

	userreportstore "github.com/dalemusser/parishhub/internal/app/store/userreports"
	"github.com/dalemusser/parishhub/internal/app/system/auth"
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

// ServeUsers handles GET /moderator/users.
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "moderator.users.list")
	defer cancel()

	users, err := h.Users.ListByOrganization(ctx, orgID)
	if err != nil {
		h.Log.Error("moderator: user list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

// ServeUser handles GET /moderator/users/{id}.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid user id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "moderator.users.get")
	defer cancel()

	user, err := h.Users.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "User not found", "")
			return
		}
		h.Log.Error("moderator: user lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

type reportRequest struct {
	Reason string `json:"reason"`
}

// HandleReport handles POST /moderator/users/{id}/report. The reported user
// must belong to the caller's organization.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w, "Please authenticate", "")
		return
	}
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid user id", "")
		return
	}

	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	reason := sanitize.Text(req.Reason)
	if reason == "" {
		respond.BadRequest(w, "Missing required fields", "reason is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "moderator.report")
	defer cancel()

	reported, err := h.Users.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "User not found", "")
			return
		}
		h.Log.Error("moderator: reported user lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	report, err := h.Reports.Create(ctx, models.UserReport{
		ReportedByID:   caller.ID,
		ReportedUserID: reported.ID,
		Reason:         reason,
	})
	if err != nil {
		h.Log.Error("moderator: report create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	h.Log.Info("user reported",
		zap.String("reported_user_id", reported.ID.Hex()),
		zap.String("reported_by_id", caller.ID.Hex()))
	respond.JSON(w, http.StatusCreated, report)
}

// ServeReports handles GET /moderator/reports. An optional ?status= filter
// narrows the list.
func (h *Handler) ServeReports(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "moderator.reports.list")
	defer cancel()

	reports, err := h.Reports.List(ctx, r.URL.Query().Get("status"))
	if err != nil {
		h.Log.Error("moderator: report list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, reports)
}

type reportStatusRequest struct {
	Status string `json:"status"`
}

// HandleReportStatus handles PUT /moderator/reports/{id}/status.
func (h *Handler) HandleReportStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid report id", "")
		return
	}

	var req reportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "moderator.report.status")
	defer cancel()

	matched, err := h.Reports.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, userreportstore.ErrBadStatus) {
			respond.BadRequest(w, "Invalid status", err.Error())
			return
		}
		h.Log.Error("moderator: report status update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if matched == 0 {
		respond.NotFound(w, "Report not found", "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Report updated successfully"})
}
