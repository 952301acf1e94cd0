package classattendance_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/parishhub/internal/app/features/classattendance"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/parishhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestHandleCreate_SameDayDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := classattendance.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Parish")
	clerk := fixtures.CreateUser(ctx, "Carl", "carl@example.com", models.RoleClerk, org.ID)
	member := fixtures.CreateClassMember(ctx, "Amina", primitive.NewObjectID(), org.ID)

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := testutil.WithUser(httptest.NewRequest("POST", "/church/class-attendance",
			strings.NewReader(body)), &clerk)
		h.HandleCreate(rec, req)
		return rec
	}

	rec := post(`{"classMember":"` + member.ID.Hex() + `","date":"2024-05-04T09:00:00Z","keshaReaders":2}`)
	if rec.Code != 201 {
		t.Fatalf("first record status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	rec = post(`{"classMember":"` + member.ID.Hex() + `","date":"2024-05-04T21:00:00Z"}`)
	if rec.Code != 400 {
		t.Fatalf("same-day status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}

	rec = post(`{"classMember":"` + member.ID.Hex() + `","date":"2024-05-05T09:00:00Z"}`)
	if rec.Code != 201 {
		t.Fatalf("next-day status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestHandleCreate_MemberFromOtherOrg404(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := classattendance.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Parish A")
	orgB := fixtures.CreateOrganization(ctx, "Parish B")
	clerkB := fixtures.CreateUser(ctx, "Carl", "carl@example.com", models.RoleClerk, orgB.ID)
	memberA := fixtures.CreateClassMember(ctx, "Amina", primitive.NewObjectID(), orgA.ID)

	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("POST", "/church/class-attendance",
		strings.NewReader(`{"classMember":"`+memberA.ID.Hex()+`"}`)), &clerkB)
	h.HandleCreate(rec, req)

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404 not 403", rec.Code)
	}
}

func TestHandleCreate_NegativeCounter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := classattendance.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Parish")
	clerk := fixtures.CreateUser(ctx, "Carl", "carl@example.com", models.RoleClerk, org.ID)
	member := fixtures.CreateClassMember(ctx, "Amina", primitive.NewObjectID(), org.ID)

	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("POST", "/church/class-attendance",
		strings.NewReader(`{"classMember":"`+member.ID.Hex()+`","moneyFoodValue":-5}`)), &clerk)
	h.HandleCreate(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid moneyFoodValue") {
		t.Errorf("body = %s, want Invalid moneyFoodValue", rec.Body.String())
	}
}

func TestRecordAccess_CrossTenant404(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := classattendance.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Parish A")
	orgB := fixtures.CreateOrganization(ctx, "Parish B")
	clerkA := fixtures.CreateUser(ctx, "Ann", "ann@example.com", models.RoleClerk, orgA.ID)
	clerkB := fixtures.CreateUser(ctx, "Carl", "carl@example.com", models.RoleClerk, orgB.ID)
	memberA := fixtures.CreateClassMember(ctx, "Amina", primitive.NewObjectID(), orgA.ID)

	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("POST", "/church/class-attendance",
		strings.NewReader(`{"classMember":"`+memberA.ID.Hex()+`","peopleHelped":1}`)), &clerkA)
	h.HandleCreate(rec, req)
	if rec.Code != 201 {
		t.Fatalf("create status = %d (body %s)", rec.Code, rec.Body.String())
	}
	var created models.ClassAttendance
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	rec = httptest.NewRecorder()
	req = testutil.WithUser(testutil.WithChiURLParam(
		httptest.NewRequest("GET", "/church/class-attendance/"+created.ID.Hex(), nil),
		"attendanceID", created.ID.Hex()), &clerkB)
	h.ServeRecord(rec, req)

	if rec.Code != 404 {
		t.Fatalf("cross-tenant status = %d, want 404", rec.Code)
	}
}
