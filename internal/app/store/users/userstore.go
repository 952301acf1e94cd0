package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/parishhub/internal/app/system/normalize"
	"github.com/dalemusser/parishhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when the email already belongs to any
	// user in the system, regardless of organization.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "admin"|"clerk"|"regular"|"instructor"|"member"`)
	errOrgNeeded      = errors.New("user must have organization_id")
)

// GetByID loads a user by ObjectID without tenant scoping. Used by the
// authenticate middleware, which scopes everything after it.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDInOrg loads a user by ObjectID scoped to one organization.
// A record belonging to another organization comes back as
// mongo.ErrNoDocuments, indistinguishable from a missing one.
func (s *Store) GetByIDInOrg(ctx context.Context, id, orgID primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "organization_id": orgID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email across all organizations.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FirstName = normalize.Name(u.FirstName)
	u.MiddleName = normalize.Name(u.MiddleName)
	u.LastName = normalize.Name(u.LastName)
	u.Email = normalize.Email(u.Email)
	u.PhoneNumber = normalize.Phone(u.PhoneNumber)

	if !models.ValidRole(u.Role) {
		return models.User{}, errBadRole
	}
	if u.OrganizationID.IsZero() {
		return models.User{}, errOrgNeeded
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// CountByOrganization returns the number of users in one organization.
// A zero count is what allows self-registration of the first admin.
func (s *Store) CountByOrganization(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"organization_id": orgID})
}

// ListByOrganization returns all users in an organization.
func (s *Store) ListByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRoleInOrg returns an organization's users holding one role,
// e.g. its instructors.
func (s *Store) ListByRoleInOrg(ctx context.Context, orgID primitive.ObjectID, role models.Role) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID, "role": role})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ProfileUpdate holds the fields a user may change on their own profile.
// Nil pointers leave the stored value untouched.
type ProfileUpdate struct {
	FirstName   *string
	MiddleName  *string
	LastName    *string
	PhoneNumber *string
	Address     *string
	Gender      *string
}

// UpdateProfile applies a partial profile update and refreshes UpdatedAt.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.FirstName != nil {
		set["first_name"] = normalize.Name(*upd.FirstName)
	}
	if upd.MiddleName != nil {
		set["middle_name"] = normalize.Name(*upd.MiddleName)
	}
	if upd.LastName != nil {
		set["last_name"] = normalize.Name(*upd.LastName)
	}
	if upd.PhoneNumber != nil {
		set["phone_number"] = normalize.Phone(*upd.PhoneNumber)
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.Gender != nil {
		set["gender"] = *upd.Gender
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// UpdateRoleInOrg changes a user's role, scoped to the caller's
// organization. Returns the number of documents matched (0 or 1).
func (s *Store) UpdateRoleInOrg(ctx context.Context, id, orgID primitive.ObjectID, role models.Role) (int64, error) {
	if !models.ValidRole(role) {
		return 0, errBadRole
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "organization_id": orgID},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// UpdatePasswordHash replaces a user's stored password hash.
func (s *Store) UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// UpdateProfileImage sets a user's profile image URL.
func (s *Store) UpdateProfileImage(ctx context.Context, id primitive.ObjectID, url string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"profile_image_url": url,
		"updated_at":        time.Now().UTC(),
	}})
	return err
}

// DeleteInOrg removes a user, scoped to the caller's organization.
// Returns the number of documents deleted (0 or 1).
func (s *Store) DeleteInOrg(ctx context.Context, id, orgID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "organization_id": orgID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EmailExists checks whether any user in the system already has the email.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}
