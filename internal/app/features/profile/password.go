// internal/app/features/profile/password.go
package profile

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/parishhub/internal/app/system/auth"
	"github.com/dalemusser/parishhub/internal/app/system/authutil"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// HandleChangePassword handles PUT /users/change-password. The current
// password must verify before the new one is stored.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w, "Please authenticate", "")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		respond.BadRequest(w, "Missing required fields", "currentPassword and newPassword are required")
		return
	}
	if err := authutil.ValidatePassword(req.NewPassword); err != nil {
		respond.BadRequest(w, "Invalid password", err.Error())
		return
	}
	if !authutil.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		respond.Unauthorized(w, "Password verification failed", "")
		return
	}

	hash, err := authutil.HashPassword(req.NewPassword)
	if err != nil {
		h.Log.Error("password change: hash failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "profile.change-password")
	defer cancel()

	if err := h.Users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		h.Log.Error("password change: update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
