package organizationstore_test

import (
	"errors"
	"testing"

	organizationstore "github.com/dalemusser/parishhub/internal/app/store/organizations"
	"github.com/dalemusser/parishhub/internal/app/system/indexes"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/parishhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org, err := store.Create(ctx, models.Organization{
		Name:        "  Grace Chapel  ",
		Description: "City congregation",
		Email:       "Office@GraceChapel.org",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if org.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if org.Name != "Grace Chapel" {
		t.Errorf("name = %q, want trimmed", org.Name)
	}
	if org.NameCI != "grace chapel" {
		t.Errorf("name_ci = %q", org.NameCI)
	}
	if org.Email != "office@gracechapel.org" {
		t.Errorf("email = %q, want normalized", org.Email)
	}
	if org.CreatedAt.IsZero() || org.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := store.Create(ctx, models.Organization{Name: "Grace Chapel"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same name with different casing collides on the folded name.
	_, err := store.Create(ctx, models.Organization{Name: "GRACE chapel"})
	if !errors.Is(err, organizationstore.ErrDuplicateOrganization) {
		t.Errorf("expected ErrDuplicateOrganization, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org, err := store.Create(ctx, models.Organization{Name: "Grace Chapel", Description: "Old"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.Update(ctx, org.ID, models.Organization{Description: "Updated description"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Description != "Updated description" {
		t.Errorf("description = %q", got.Description)
	}
	// Name untouched by the partial update.
	if got.Name != "Grace Chapel" {
		t.Errorf("name = %q, want unchanged", got.Name)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"Org One", "Org Two", "Org Three"} {
		if _, err := store.Create(ctx, models.Organization{Name: name}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	orgs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(orgs) != 3 {
		t.Errorf("expected 3 organizations, got %d", len(orgs))
	}
}

func TestStore_ExistsByNameCI(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := organizationstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Organization{Name: "Grace Chapel"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	exists, err := store.ExistsByNameCI(ctx, "grace CHAPEL")
	if err != nil {
		t.Fatalf("ExistsByNameCI failed: %v", err)
	}
	if !exists {
		t.Error("expected case-insensitive match")
	}

	exists, err = store.ExistsByNameCI(ctx, "Other Org")
	if err != nil {
		t.Fatalf("ExistsByNameCI failed: %v", err)
	}
	if exists {
		t.Error("expected no match for unknown name")
	}
}
