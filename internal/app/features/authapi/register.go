// internal/app/features/authapi/register.go
package authapi

import (
	"encoding/json"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"github.com/dalemusser/parishhub/internal/app/system/authutil"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type registerRequest struct {
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	PhoneNumber  string `json:"phoneNumber"`
	Organization string `json:"organization"`
	Address      string `json:"address"`
	Gender       string `json:"gender"`
}

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// HandleRegister creates the founding admin of an organization. It only works
// while the organization has no users of its own; once one exists, new
// accounts come from that organization's admin.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" || req.Organization == "" {
		respond.BadRequest(w, "Missing required fields", "firstName, lastName, email, password and organization are required")
		return
	}
	if !validate.SimpleEmailValid(req.Email) {
		respond.BadRequest(w, "Invalid email", "")
		return
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		respond.BadRequest(w, "Invalid password", err.Error())
		return
	}
	orgID, err := primitive.ObjectIDFromHex(req.Organization)
	if err != nil {
		respond.BadRequest(w, "Invalid organization id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "auth.register")
	defer cancel()

	if _, err := h.Orgs.GetByID(ctx, orgID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Organization not found", "")
			return
		}
		h.Log.Error("register: organization lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	count, err := h.Users.CountByOrganization(ctx, orgID)
	if err != nil {
		h.Log.Error("register: user count failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if count > 0 {
		respond.Forbidden(w, "Permission Denied", "This organization already has an administrator")
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("register: password hash failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	user, err := h.Users.Create(ctx, models.User{
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		PasswordHash:   hash,
		Role:           models.RoleAdmin,
		OrganizationID: orgID,
		Address:        req.Address,
		Gender:         req.Gender,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.BadRequest(w, "Duplicate Entry", "A user with this email already exists")
			return
		}
		h.Log.Error("register: user create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	token, err := h.Tokens.Issue(user.ID.Hex(), string(user.Role), user.OrganizationID.Hex(), user.IsInstructor())
	if err != nil {
		h.Log.Error("register: token issue failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	h.Log.Info("organization admin registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("organization_id", orgID.Hex()))
	respond.JSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}
