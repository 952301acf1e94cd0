package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/parishhub/internal/app/system/auth"
	"github.com/dalemusser/parishhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-signing-secret-at-least-32-chars"

func newTestUser() *models.User {
	return &models.User{
		ID:             primitive.NewObjectID(),
		FirstName:      "Test",
		LastName:       "User",
		Email:          "test@example.com",
		Role:           models.RoleAdmin,
		OrganizationID: primitive.NewObjectID(),
	}
}

func lookupFor(u *models.User) auth.UserLookup {
	return func(_ context.Context, id primitive.ObjectID) (*models.User, error) {
		if u != nil && id == u.ID {
			return u, nil
		}
		return nil, errors.New("not found")
	}
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	u := newTestUser()

	token, err := tm.Issue(u.ID.Hex(), string(u.Role), u.OrganizationID.Hex(), false)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Subject != u.ID.Hex() {
		t.Errorf("subject = %q, want %q", claims.Subject, u.ID.Hex())
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q, want %q", claims.Role, "admin")
	}
	if claims.OrganizationID != u.OrganizationID.Hex() {
		t.Errorf("organization = %q, want %q", claims.OrganizationID, u.OrganizationID.Hex())
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	other := auth.NewTokenManager("a-completely-different-signing-secret", time.Hour)

	token, err := tm.Issue(primitive.NewObjectID().Hex(), "clerk", primitive.NewObjectID().Hex(), false)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("expected verify to fail with the wrong secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, -time.Minute)

	token, err := tm.Issue(primitive.NewObjectID().Hex(), "clerk", primitive.NewObjectID().Hex(), false)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := tm.Verify(token); err == nil {
		t.Error("expected verify to fail for an expired token")
	}
}

func TestVerify_Garbage(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	if _, err := tm.Verify("not.a.token"); err == nil {
		t.Error("expected verify to fail for a malformed token")
	}
}

func TestAuthenticate_NoToken_Returns401(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	called := false
	handler := auth.Authenticate(tm, lookupFor(nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/church/users/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if called {
		t.Error("handler must not run without a token")
	}
}

func TestAuthenticate_BadToken_Returns401(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	handler := auth.Authenticate(tm, lookupFor(nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/church/users/profile", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthenticate_DeletedAccount_Returns401(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	u := newTestUser()

	token, err := tm.Issue(u.ID.Hex(), string(u.Role), u.OrganizationID.Hex(), false)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// Lookup knows nothing about u, as if the account was removed.
	handler := auth.Authenticate(tm, lookupFor(nil))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/church/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthenticate_ValidToken_InjectsUser(t *testing.T) {
	tm := auth.NewTokenManager(testSecret, time.Hour)
	u := newTestUser()

	token, err := tm.Issue(u.ID.Hex(), string(u.Role), u.OrganizationID.Hex(), false)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var got *models.User
	handler := auth.Authenticate(tm, lookupFor(u))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/church/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got == nil || got.ID != u.ID {
		t.Error("expected the looked-up user in context")
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	user, ok := auth.CurrentUser(req)
	if ok {
		t.Error("expected ok to be false when no user in context")
	}
	if user != nil {
		t.Error("expected user to be nil when no user in context")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc123", "abc123", true},
		{"Bearer ", "", false},
		{"", "", false},
		{"Basic abc123", "", false},
		{"Bearer  spaced ", "spaced", true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		got, ok := auth.BearerToken(req)
		if got != tt.want || ok != tt.ok {
			t.Errorf("BearerToken(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}
