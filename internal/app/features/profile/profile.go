// internal/app/features/profile/profile.go
package profile

import (
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"github.com/dalemusser/parishhub/internal/app/system/auth"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeProfile handles GET /users/profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w, "Please authenticate", "")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

type profileUpdateRequest struct {
	FirstName   *string `json:"firstName"`
	MiddleName  *string `json:"middleName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	Gender      *string `json:"gender"`
}

// HandleUpdateProfile handles PUT /users/profile. Only the listed fields can
// change; role, email and organization have their own paths.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w, "Please authenticate", "")
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "profile.update")
	defer cancel()

	err := h.Users.UpdateProfile(ctx, user.ID, userstore.ProfileUpdate{
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Gender:      req.Gender,
	})
	if err != nil {
		h.Log.Error("profile: update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	updated, err := h.Users.GetByID(ctx, user.ID)
	if err != nil {
		h.Log.Error("profile: reload failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}
