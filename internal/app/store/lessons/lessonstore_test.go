package lessonstore_test

import (
	"testing"
	"time"

	lessonstore "github.com/dalemusser/parishhub/internal/app/store/lessons"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/parishhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_DefaultsRegisterDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := lessonstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lesson, err := store.Create(ctx, models.Lesson{
		Name:           "Quarterly Guide",
		Age:            12,
		Price:          150,
		Quantity:       40,
		OrganizationID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if lesson.DateOfRegister.IsZero() {
		t.Error("expected DateOfRegister to default to now")
	}
}

func TestStore_Create_KeepsGivenRegisterDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := lessonstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	when := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	lesson, err := store.Create(ctx, models.Lesson{
		Name:           "Quarterly Guide",
		DateOfRegister: when,
		OrganizationID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !lesson.DateOfRegister.Equal(when) {
		t.Errorf("DateOfRegister = %v, want %v", lesson.DateOfRegister, when)
	}
}

func TestStore_UpdateInOrg_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := lessonstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Org")
	lesson := fixtures.CreateLesson(ctx, "Quarterly Guide", org.ID)

	quantity := 75
	matched, err := store.UpdateInOrg(ctx, lesson.ID, org.ID, lessonstore.Update{
		Quantity: &quantity,
	})
	if err != nil {
		t.Fatalf("UpdateInOrg failed: %v", err)
	}
	if matched != 1 {
		t.Fatalf("expected 1 match, got %d", matched)
	}

	got, err := store.GetByIDInOrg(ctx, lesson.ID, org.ID)
	if err != nil {
		t.Fatalf("GetByIDInOrg failed: %v", err)
	}
	if got.Quantity != quantity {
		t.Errorf("quantity = %d, want %d", got.Quantity, quantity)
	}
	if got.Name != lesson.Name {
		t.Error("untouched fields must survive a partial update")
	}
}

func TestStore_CrossTenantIsolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := lessonstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Org A")
	orgB := fixtures.CreateOrganization(ctx, "Org B")
	lesson := fixtures.CreateLesson(ctx, "Quarterly Guide", orgA.ID)

	if _, err := store.GetByIDInOrg(ctx, lesson.ID, orgB.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments for cross-tenant read, got %v", err)
	}
	deleted, err := store.DeleteInOrg(ctx, lesson.ID, orgB.ID)
	if err != nil {
		t.Fatalf("DeleteInOrg failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("cross-tenant delete removed %d documents", deleted)
	}
}
