// internal/app/features/instructors/instructors.go
package instructors

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"github.com/dalemusser/parishhub/internal/app/system/authz"
	"github.com/dalemusser/parishhub/internal/app/system/respond"
	"github.com/dalemusser/parishhub/internal/app/system/timeouts"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Profile images arrive as multipart uploads; imgur caps anonymous
// uploads at 10 MB.
const maxImageBytes = 10 << 20

// ServeList handles GET /instructors.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "instructors.list")
	defer cancel()

	users, err := h.Users.ListByRoleInOrg(ctx, orgID, models.RoleInstructor)
	if err != nil {
		h.Log.Error("instructors: list failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

// ServeInstructor handles GET /instructors/{id}.
func (h *Handler) ServeInstructor(w http.ResponseWriter, r *http.Request) {
	instructor, ok := h.loadInstructor(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, instructor)
}

// HandleCreate handles POST /instructors. The request is a multipart form
// with the instructor's details and a profileImage file, which must upload
// successfully before the account is created.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		respond.BadRequest(w, "Invalid request body", "expected multipart form data")
		return
	}
	firstName := r.PostFormValue("firstName")
	lastName := r.PostFormValue("lastName")
	email := r.PostFormValue("email")
	phone := r.PostFormValue("phoneNumber")
	if firstName == "" || lastName == "" || email == "" || phone == "" {
		respond.BadRequest(w, "Missing required fields", "firstName, lastName, email and phoneNumber are required")
		return
	}
	if !validate.SimpleEmailValid(email) {
		respond.BadRequest(w, "Invalid email", "")
		return
	}

	file, _, err := r.FormFile("profileImage")
	if err != nil {
		respond.BadRequest(w, "Profile image is required for instructors", "")
		return
	}
	defer file.Close()
	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil || len(image) == 0 {
		respond.BadRequest(w, "Profile image is required for instructors", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "instructors.create")
	defer cancel()

	exists, err := h.Users.EmailExists(ctx, email)
	if err != nil {
		h.Log.Error("instructors: email check failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if exists {
		respond.BadRequest(w, "User with this email already exists", "")
		return
	}

	imageURL, err := h.Images.Upload(ctx, image)
	if err != nil {
		h.Log.Error("instructors: image upload failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to upload image to Imgur", "")
		return
	}

	created, err := h.Users.Create(ctx, models.User{
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		PhoneNumber:     phone,
		Address:         r.PostFormValue("address"),
		ProfileImageURL: imageURL,
		Role:            models.RoleInstructor,
		OrganizationID:  orgID,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.BadRequest(w, "User with this email already exists", "")
			return
		}
		h.Log.Error("instructors: create failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

type instructorUpdateRequest struct {
	FirstName   *string `json:"firstName"`
	MiddleName  *string `json:"middleName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	Gender      *string `json:"gender"`
}

// HandleUpdate handles PUT /instructors/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	instructor, ok := h.loadInstructor(w, r)
	if !ok {
		return
	}

	var req instructorUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Invalid request body", "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "instructors.update")
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, instructor.ID, userstore.ProfileUpdate{
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Gender:      req.Gender,
	}); err != nil {
		h.Log.Error("instructors: update failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}

	updated, err := h.Users.GetByID(ctx, instructor.ID)
	if err != nil {
		h.Log.Error("instructors: reload failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /instructors/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	instructor, ok := h.loadInstructor(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "instructors.delete")
	defer cancel()

	deleted, err := h.Users.DeleteInOrg(ctx, instructor.ID, authz.UserOrgID(r))
	if err != nil {
		h.Log.Error("instructors: delete failed", zap.Error(err))
		respond.ServerError(w, "")
		return
	}
	if deleted == 0 {
		respond.NotFound(w, "Instructor not found in your organization", "")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Instructor deleted successfully"})
}

// loadInstructor resolves the {id} route param to an instructor in the
// caller's organization. Users with other roles report not-found.
func (h *Handler) loadInstructor(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	orgID := authz.UserOrgID(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid instructor id", "")
		return nil, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "instructors.get")
	defer cancel()

	user, err := h.Users.GetByIDInOrg(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Instructor not found in your organization", "")
			return nil, false
		}
		h.Log.Error("instructors: lookup failed", zap.Error(err))
		respond.ServerError(w, "")
		return nil, false
	}
	if user.Role != models.RoleInstructor {
		respond.NotFound(w, "Instructor not found in your organization", "")
		return nil, false
	}
	return user, true
}
