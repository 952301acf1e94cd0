// internal/app/features/admin/users.go
package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"github.com/dalemusser/parishhub/internal/app/system/authutil"
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/app/system/mailer"
	"github.com/dalemusser/parishhub/internal/app/system/passwordgen"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeList handles GET /admin/users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin.users.list")
	defer cancel()

	users, err := h.Users.ListByOrganization(ctx, orgID)
	if err != nil {
		h.Log.Error("admin: user list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

// ServeUser handles GET /admin/users/{id}.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid user id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin.users.get")
	defer cancel()

	user, err := h.Users.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "User not found", "")
			return
		}
		h.Log.Error("admin: user lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

type createUserRequest struct {
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	Address     string `json:"address"`
	Gender      string `json:"gender"`
	Member      bool   `json:"member"`
}

type createUserResponse struct {
	User      models.User `json:"user"`
	EmailSent bool        `json:"emailSent"`
}

// HandleCreate handles POST /admin/users. The account gets a generated
// password which is mailed to the new user; a failed mail is logged and
// reported in the response, it does not fail the creation.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		respond.BadRequest(w, "Missing required fields", "firstName and lastName are required")
		return
	}
	role := models.Role(req.Role)
	if req.Role == "" {
		role = models.RoleClerk
	}
	if !models.ValidRole(role) {
		respond.BadRequest(w, "Invalid role", "")
		return
	}
	if role == models.RoleAdmin {
		respond.Forbidden(w, "Cannot create admin users", "Organizations get their administrator through registration")
		return
	}

	// Regular users are recorded by a clerk and never sign in themselves, so
	// they are the only role without credentials.
	needsCredentials := role != models.RoleRegular
	if needsCredentials {
		if req.Email == "" || !validate.SimpleEmailValid(req.Email) {
			respond.BadRequest(w, "Invalid email", "")
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admin.users.create")
	defer cancel()

	user := models.User{
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Role:           role,
		OrganizationID: orgID,
		Address:        req.Address,
		Gender:         req.Gender,
		Member:         req.Member,
	}

	var password string
	if needsCredentials {
		password = passwordgen.Generate(req.FirstName, req.LastName)
		hash, err := authutil.HashPassword(password)
		if err != nil {
			h.Log.Error("admin: password hash failed", zap.Error(err))
			respond.ServerError(w, "")
			return
		}
		user.PasswordHash = hash
	}

	created, err := h.Users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.BadRequest(w, "Duplicate Entry", "A user with this email already exists")
			return
		}
		h.Log.Error("admin: user create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	emailSent := false
	if needsCredentials {
		email := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
			SiteName:  h.SiteName,
			FirstName: created.FirstName,
			Email:     created.Email,
			Password:  password,
		})
		if err := h.Mail.Send(email); err != nil {
			h.Log.Warn("admin: welcome email failed",
				zap.String("user_id", created.ID.Hex()), zap.Error(err))
		} else {
			emailSent = h.Mail.Enabled()
		}
	}

	h.Log.Info("user created",
		zap.String("user_id", created.ID.Hex()),
		zap.String("role", string(created.Role)),
		zap.String("organization_id", orgID.Hex()))
	respond.JSON(w, http.StatusCreated, createUserResponse{User: created, EmailSent: emailSent})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// HandleUpdateRole handles PUT /admin/users/{id}/role. Escalation to admin is
// never allowed through this path.
func (h *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid user id", "")
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}
	role := models.Role(req.Role)
	if !models.ValidRole(role) {
		respond.BadRequest(w, "Invalid role", "")
		return
	}
	if role == models.RoleAdmin {
		respond.Forbidden(w, "Cannot change role to admin", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin.users.role")
	defer cancel()

	matched, err := h.Users.UpdateRoleInOrg(ctx, id, orgID, role)
	if err != nil {
		h.Log.Error("admin: role update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if matched == 0 {
		respond.NotFound(w, "User not found", "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Role updated successfully"})
}

// HandleDelete handles DELETE /admin/users/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid user id", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin.users.delete")
	defer cancel()

	deleted, err := h.Users.DeleteInOrg(ctx, id, orgID)
	if err != nil {
		h.Log.Error("admin: user delete failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if deleted == 0 {
		respond.NotFound(w, "User not found", "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
