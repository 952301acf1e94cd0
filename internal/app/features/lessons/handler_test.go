package lessons_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/parishhub/internal/app/features/lessons"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/parishhub/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := lessons.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Parish")
	adm := fixtures.CreateUser(ctx, "Ada", "ada@example.com", models.RoleAdmin, org.ID)

	body := `{"name":"Quarterly Guide","age":12,"price":150,"quantity":40}`
	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("POST", "/church/lessons", strings.NewReader(body)), &adm)
	h.HandleCreate(rec, req)

	if rec.Code != 201 {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var lesson models.Lesson
	if err := json.NewDecoder(rec.Body).Decode(&lesson); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if lesson.Quantity != 40 || lesson.Price != 150 {
		t.Errorf("lesson = %+v, fields must round-trip", lesson)
	}
	if lesson.DateOfRegister.IsZero() {
		t.Error("dateOfRegister must default to now")
	}
}

func TestHandleCreate_NegativeField(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := lessons.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Parish")
	adm := fixtures.CreateUser(ctx, "Ada", "ada@example.com", models.RoleAdmin, org.ID)

	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("POST", "/church/lessons",
		strings.NewReader(`{"name":"Guide","quantity":-3}`)), &adm)
	h.HandleCreate(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid quantity") {
		t.Errorf("body = %s, want Invalid quantity", rec.Body.String())
	}
}

func TestHandleUpdate_CrossTenant404(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := lessons.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Parish A")
	orgB := fixtures.CreateOrganization(ctx, "Parish B")
	admB := fixtures.CreateUser(ctx, "Bea", "bea@example.com", models.RoleAdmin, orgB.ID)
	lessonA := fixtures.CreateLesson(ctx, "Guide", orgA.ID)

	rec := httptest.NewRecorder()
	req := testutil.WithUser(testutil.WithChiURLParam(
		httptest.NewRequest("PUT", "/church/lessons/"+lessonA.ID.Hex(),
			strings.NewReader(`{"quantity":10}`)), "id", lessonA.ID.Hex()), &admB)
	h.HandleUpdate(rec, req)

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRoutes_MutationNeedsManageLessons(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := lessons.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Parish")
	clerk := fixtures.CreateUser(ctx, "Carl", "carl@example.com", models.RoleClerk, org.ID)

	router := lessons.Routes(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(
		httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Guide"}`)), &clerk))
	if rec.Code != 403 {
		t.Errorf("clerk create status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(httptest.NewRequest("GET", "/", nil), &clerk))
	if rec.Code != 200 {
		t.Errorf("clerk list status = %d, want 200", rec.Code)
	}
}
