package instructors_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/parishhub/internal/app/features/instructors"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"github.com/dalemusser/parishhub/internal/testutil"
	"go.uber.org/zap"
)

type stubUploader struct {
	url string
	err error
}

func (s stubUploader) Upload(_ context.Context, _ []byte) (string, error) {
	return s.url, s.err
}

func instructorForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if withImage {
		fw, err := mw.CreateFormFile("profileImage", "photo.png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte("fake png bytes"))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := instructors.NewHandler(db, stubUploader{url: "https://i.imgur.com/abc.png"}, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Parish")
	adm := fixtures.CreateUser(ctx, "Ada", "ada@example.com", models.RoleAdmin, org.ID)

	body, contentType := instructorForm(t, map[string]string{
		"firstName":   "Iris",
		"lastName":    "Okafor",
		"email":       "iris@example.com",
		"phoneNumber": "555-0101",
	}, true)
	req := testutil.WithUser(httptest.NewRequest("POST", "/church/instructors", body), &adm)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != 201 {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var created models.User
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if created.Role != models.RoleInstructor {
		t.Errorf("role = %s, want instructor", created.Role)
	}
	if created.ProfileImageURL != "https://i.imgur.com/abc.png" {
		t.Errorf("profileImageUrl = %q, want hosted link", created.ProfileImageURL)
	}
	if created.OrganizationID != org.ID {
		t.Error("instructor must join the caller's organization")
	}
}

func TestHandleCreate_ImageRequired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := instructors.NewHandler(db, stubUploader{url: "https://i.imgur.com/abc.png"}, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Parish")
	adm := fixtures.CreateUser(ctx, "Ada", "ada@example.com", models.RoleAdmin, org.ID)

	body, contentType := instructorForm(t, map[string]string{
		"firstName":   "Iris",
		"lastName":    "Okafor",
		"email":       "iris@example.com",
		"phoneNumber": "555-0101",
	}, false)
	req := testutil.WithUser(httptest.NewRequest("POST", "/church/instructors", body), &adm)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Profile image is required") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleCreate_UploadFailureIsFatal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := instructors.NewHandler(db, stubUploader{err: errors.New("imgur down")}, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Parish")
	adm := fixtures.CreateUser(ctx, "Ada", "ada@example.com", models.RoleAdmin, org.ID)

	body, contentType := instructorForm(t, map[string]string{
		"firstName":   "Iris",
		"lastName":    "Okafor",
		"email":       "iris@example.com",
		"phoneNumber": "555-0101",
	}, true)
	req := testutil.WithUser(httptest.NewRequest("POST", "/church/instructors", body), &adm)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != 500 {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Failed to upload image") {
		t.Errorf("body = %s", rec.Body.String())
	}

	users, err := h.Users.ListByRoleInOrg(ctx, org.ID, models.RoleInstructor)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 0 {
		t.Error("no account may be created when the upload fails")
	}
}

func TestServeInstructor_WrongRoleHidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := instructors.NewHandler(db, stubUploader{url: "https://i.imgur.com/abc.png"}, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Parish")
	adm := fixtures.CreateUser(ctx, "Ada", "ada@example.com", models.RoleAdmin, org.ID)
	clerk := fixtures.CreateUser(ctx, "Carl", "carl@example.com", models.RoleClerk, org.ID)

	rec := httptest.NewRecorder()
	req := testutil.WithUser(testutil.WithChiURLParam(
		httptest.NewRequest("GET", "/church/instructors/"+clerk.ID.Hex(), nil), "id", clerk.ID.Hex()), &adm)
	h.ServeInstructor(rec, req)

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404 for non-instructor user", rec.Code)
	}
}

func TestHandleDelete_CrossTenant404(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := instructors.NewHandler(db, stubUploader{url: "https://i.imgur.com/abc.png"}, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	orgA := fixtures.CreateOrganization(ctx, "Parish A")
	orgB := fixtures.CreateOrganization(ctx, "Parish B")
	inst := fixtures.CreateUser(ctx, "Iris", "iris@example.com", models.RoleInstructor, orgA.ID)
	admB := fixtures.CreateUser(ctx, "Bea", "bea@example.com", models.RoleAdmin, orgB.ID)

	rec := httptest.NewRecorder()
	req := testutil.WithUser(testutil.WithChiURLParam(
		httptest.NewRequest("DELETE", "/church/instructors/"+inst.ID.Hex(), nil), "id", inst.ID.Hex()), &admB)
	h.HandleDelete(rec, req)

	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
