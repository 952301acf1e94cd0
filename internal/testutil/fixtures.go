package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/parishhub/internal/app/system/authutil"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Repeated calls accumulate parameters on the same route context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test congregation",
		Address:     "1 Test Street",
		PhoneNumber: "+255 700 000 000",
		Email:       "office@example.com",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateUser creates a test user with the given role and organization.
// The password for every fixture user is "password123".
func (f *Fixtures) CreateUser(ctx context.Context, firstName, email string, role models.Role, orgID primitive.ObjectID) models.User {
	f.t.Helper()

	hash, err := authutil.HashPassword("password123")
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:             primitive.NewObjectID(),
		FirstName:      firstName,
		LastName:       "Fixture",
		Email:          email,
		PhoneNumber:    "+255 700 000 001",
		PasswordHash:   hash,
		Role:           role,
		OrganizationID: orgID,
		Address:        "2 Test Street",
		Gender:         "female",
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateClass creates a test class taught by the given instructor.
func (f *Fixtures) CreateClass(ctx context.Context, name string, instructorID, orgID primitive.ObjectID) models.Class {
	f.t.Helper()

	now := time.Now().UTC()
	class := models.Class{
		ID:             primitive.NewObjectID(),
		Name:           name,
		InstructorID:   instructorID,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("classes").InsertOne(ctx, class); err != nil {
		f.t.Fatalf("failed to create test class: %v", err)
	}
	return class
}

// CreateClassMember creates a test class member.
func (f *Fixtures) CreateClassMember(ctx context.Context, firstName string, classID, orgID primitive.ObjectID) models.ClassMember {
	f.t.Helper()

	now := time.Now().UTC()
	member := models.ClassMember{
		ID:             primitive.NewObjectID(),
		FirstName:      firstName,
		SecondName:     "Of",
		LastName:       "Fixture",
		ClassID:        classID,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("class_members").InsertOne(ctx, member); err != nil {
		f.t.Fatalf("failed to create test class member: %v", err)
	}
	return member
}

// CreateCustomer creates a test customer.
func (f *Fixtures) CreateCustomer(ctx context.Context, firstName string, orgID primitive.ObjectID) models.Customer {
	f.t.Helper()

	now := time.Now().UTC()
	customer := models.Customer{
		ID:             primitive.NewObjectID(),
		FirstName:      firstName,
		LastName:       "Fixture",
		PhoneNumber:    "+255 700 000 002",
		Address:        "3 Test Street",
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("customers").InsertOne(ctx, customer); err != nil {
		f.t.Fatalf("failed to create test customer: %v", err)
	}
	return customer
}

// CreateLesson creates a test lesson record.
func (f *Fixtures) CreateLesson(ctx context.Context, name string, orgID primitive.ObjectID) models.Lesson {
	f.t.Helper()

	now := time.Now().UTC()
	lesson := models.Lesson{
		ID:             primitive.NewObjectID(),
		Name:           name,
		DateOfRegister: now,
		Age:            12,
		Price:          5.0,
		Quantity:       1,
		OrganizationID: orgID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("lessons").InsertOne(ctx, lesson); err != nil {
		f.t.Fatalf("failed to create test lesson: %v", err)
	}
	return lesson
}
