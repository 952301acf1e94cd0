package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/parishhub/internal/app/store/users"
	"github.com/dalemusser/parishhub/internal/app/system/indexes"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/parishhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")

	user := models.User{
		FirstName:      "Amina",
		LastName:       "Mushi",
		Email:          "  Amina@Example.COM ",
		Role:           models.RoleAdmin,
		OrganizationID: org.ID,
	}

	created, err := store.Create(ctx, user)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "amina@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Test Org")

	_, err := store.Create(ctx, models.User{
		FirstName:      "Bad",
		Email:          "bad@example.com",
		Role:           "superuser",
		OrganizationID: org.ID,
	})
	if err == nil {
		t.Error("expected error for invalid role")
	}
}

func TestStore_Create_MissingOrg(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		FirstName: "NoOrg",
		Email:     "noorg@example.com",
		Role:      models.RoleClerk,
	})
	if err == nil {
		t.Error("expected error for missing organization")
	}
}

func TestStore_Create_DuplicateEmail_AcrossOrgs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")

	_, err := store.Create(ctx, models.User{
		FirstName:      "First",
		Email:          "shared@example.com",
		Role:           models.RoleAdmin,
		OrganizationID: orgA.ID,
	})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Email uniqueness is global, so a different organization cannot reuse it.
	_, err = store.Create(ctx, models.User{
		FirstName:      "Second",
		Email:          "shared@example.com",
		Role:           models.RoleAdmin,
		OrganizationID: orgB.ID,
	})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByIDInOrg_CrossTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", models.RoleClerk, orgA.ID)

	// Same org: found.
	got, err := store.GetByIDInOrg(ctx, user.ID, orgA.ID)
	if err != nil {
		t.Fatalf("GetByIDInOrg failed: %v", err)
	}
	if got.ID != user.ID {
		t.Error("expected matching user")
	}

	// Other org: indistinguishable from missing.
	_, err = store.GetByIDInOrg(ctx, user.ID, orgB.ID)
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for cross-tenant read, got %v", err)
	}
}

func TestStore_CountByOrganization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")

	n, err := store.CountByOrganization(ctx, orgA.ID)
	if err != nil {
		t.Fatalf("CountByOrganization failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 users, got %d", n)
	}

	fixtures.CreateUser(ctx, "One", "one@example.com", models.RoleAdmin, orgA.ID)
	fixtures.CreateUser(ctx, "Two", "two@example.com", models.RoleClerk, orgA.ID)
	fixtures.CreateUser(ctx, "Other", "other@example.com", models.RoleAdmin, orgB.ID)

	n, err = store.CountByOrganization(ctx, orgA.ID)
	if err != nil {
		t.Fatalf("CountByOrganization failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 users in org A, got %d", n)
	}
}

func TestStore_UpdateRoleInOrg(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", models.RoleRegular, orgA.ID)

	matched, err := store.UpdateRoleInOrg(ctx, user.ID, orgA.ID, models.RoleClerk)
	if err != nil {
		t.Fatalf("UpdateRoleInOrg failed: %v", err)
	}
	if matched != 1 {
		t.Errorf("expected 1 match, got %d", matched)
	}

	got, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Role != models.RoleClerk {
		t.Errorf("role = %q, want %q", got.Role, models.RoleClerk)
	}

	// Cross-tenant update matches nothing.
	matched, err = store.UpdateRoleInOrg(ctx, user.ID, orgB.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRoleInOrg failed: %v", err)
	}
	if matched != 0 {
		t.Errorf("expected 0 matches for cross-tenant update, got %d", matched)
	}
}

func TestStore_UpdateProfile_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Org")
	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", models.RoleRegular, org.ID)

	phone := "+255 711 222 333"
	if err := store.UpdateProfile(ctx, user.ID, userstore.ProfileUpdate{PhoneNumber: &phone}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	got, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.PhoneNumber != phone {
		t.Errorf("phone = %q, want %q", got.PhoneNumber, phone)
	}
	// Untouched fields survive.
	if got.FirstName != "Ana" {
		t.Errorf("first name = %q, want unchanged", got.FirstName)
	}
}

func TestStore_DeleteInOrg(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	user := fixtures.CreateUser(ctx, "Ana", "ana@example.com", models.RoleRegular, orgA.ID)

	deleted, err := store.DeleteInOrg(ctx, user.ID, orgB.ID)
	if err != nil {
		t.Fatalf("DeleteInOrg failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("cross-tenant delete removed %d documents", deleted)
	}

	deleted, err = store.DeleteInOrg(ctx, user.ID, orgA.ID)
	if err != nil {
		t.Fatalf("DeleteInOrg failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deletion, got %d", deleted)
	}
}

func TestStore_GetByEmail_Normalizes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Org")
	fixtures.CreateUser(ctx, "Ana", "ana@example.com", models.RoleRegular, org.ID)

	got, err := store.GetByEmail(ctx, "  ANA@Example.com ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.Email != "ana@example.com" {
		t.Errorf("email = %q", got.Email)
	}
}
