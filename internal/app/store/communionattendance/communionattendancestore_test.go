package communionattendancestore_test

import (
	"testing"
	"time"

	communionattendancestore "github.com/dalemusser/parishhub/internal/app/store/communionattendance"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/parishhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_ExistsForUserOnDay(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := communionattendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	orgID := primitive.NewObjectID()
	morning := time.Date(2024, 6, 2, 8, 15, 0, 0, time.UTC)

	_, err := store.Create(ctx, models.CommunionAttendance{
		UserID:         userID,
		OrganizationID: orgID,
		ScannedByID:    primitive.NewObjectID(),
		ScannedAt:      morning,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	exists, err := store.ExistsForUserOnDay(ctx, userID, time.Date(2024, 6, 2, 19, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ExistsForUserOnDay failed: %v", err)
	}
	if !exists {
		t.Error("expected a same-day scan to be found")
	}

	exists, err = store.ExistsForUserOnDay(ctx, userID, time.Date(2024, 6, 3, 8, 15, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ExistsForUserOnDay failed: %v", err)
	}
	if exists {
		t.Error("next-day check must not see the previous scan")
	}
}

func TestStore_Latest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := communionattendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgID := primitive.NewObjectID()
	otherOrg := primitive.NewObjectID()
	base := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := store.Create(ctx, models.CommunionAttendance{
			UserID:         primitive.NewObjectID(),
			OrganizationID: orgID,
			ScannedByID:    primitive.NewObjectID(),
			ScannedAt:      base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := store.Create(ctx, models.CommunionAttendance{
		UserID:         primitive.NewObjectID(),
		OrganizationID: otherOrg,
		ScannedByID:    primitive.NewObjectID(),
		ScannedAt:      base.Add(10 * time.Hour),
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	latest, err := store.Latest(ctx, orgID, 3)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if len(latest) != 3 {
		t.Fatalf("expected 3 records, got %d", len(latest))
	}
	if !latest[0].ScannedAt.After(latest[1].ScannedAt) {
		t.Error("expected records sorted newest first")
	}
	for _, rec := range latest {
		if rec.OrganizationID != orgID {
			t.Error("Latest leaked another organization's record")
		}
	}
}

func TestStore_StatsByDay(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := communionattendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgID := primitive.NewObjectID()
	scans := []time.Time{
		time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
	}
	for _, at := range scans {
		_, err := store.Create(ctx, models.CommunionAttendance{
			UserID:         primitive.NewObjectID(),
			OrganizationID: orgID,
			ScannedByID:    primitive.NewObjectID(),
			ScannedAt:      at,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	stats, err := store.StatsByDay(ctx, orgID, from, to)
	if err != nil {
		t.Fatalf("StatsByDay failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(stats))
	}
	if stats[0].Count != 3 {
		t.Errorf("first day count = %d, want 3", stats[0].Count)
	}
	if stats[1].Count != 1 {
		t.Errorf("second day count = %d, want 1", stats[1].Count)
	}
	if !stats[0].Date.Before(stats[1].Date) {
		t.Error("expected buckets in ascending date order")
	}
}

func TestStore_ListInRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := communionattendancestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgID := primitive.NewObjectID()
	for _, day := range []int{1, 5, 9} {
		_, err := store.Create(ctx, models.CommunionAttendance{
			UserID:         primitive.NewObjectID(),
			OrganizationID: orgID,
			ScannedByID:    primitive.NewObjectID(),
			ScannedAt:      time.Date(2024, 6, day, 9, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	from := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	records, err := store.ListInRange(ctx, orgID, from, to)
	if err != nil {
		t.Fatalf("ListInRange failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record in range, got %d", len(records))
	}
}
