// internal/app/features/authapi/login.go
package authapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/parishhub/internal/app/system/authutil"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and returns a fresh bearer token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.BadRequest(w, "Missing required fields", "email and password are required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "auth.login")
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Unauthorized(w, "Invalid login credentials", "")
			return
		}
		h.Log.Error("login: user lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if user.PasswordHash == "" || !authutil.CheckPassword(user.PasswordHash, req.Password) {
		respond.Unauthorized(w, "Invalid login credentials", "")
		return
	}

	token, err := h.Tokens.Issue(user.ID.Hex(), string(user.Role), user.OrganizationID.Hex(), user.IsInstructor())
	if err != nil {
		h.Log.Error("login: token issue failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	respond.JSON(w, http.StatusOK, authResponse{User: *user, Token: token})
}
