package imagestore

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New("test-client-id", zap.NewNop())
	c.endpoint = srv.URL
	return c
}

func TestUpload_Success(t *testing.T) {
	image := []byte("fake png bytes")

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID test-client-id" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		decoded, err := base64.StdEncoding.DecodeString(r.PostFormValue("image"))
		if err != nil {
			t.Fatalf("decode image field: %v", err)
		}
		if string(decoded) != string(image) {
			t.Error("image payload does not round-trip")
		}
		w.Write([]byte(`{"data":{"link":"https://i.imgur.com/abc123.png"},"success":true}`))
	})

	link, err := c.Upload(context.Background(), image)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if link != "https://i.imgur.com/abc123.png" {
		t.Errorf("link = %q", link)
	}
}

func TestUpload_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := c.Upload(context.Background(), []byte("x")); err == nil {
		t.Error("expected error on non-200 response")
	}
}

func TestUpload_MissingLink(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{},"success":false}`))
	})

	if _, err := c.Upload(context.Background(), []byte("x")); err == nil {
		t.Error("expected error when response has no link")
	}
}

func TestUpload_NotConfigured(t *testing.T) {
	c := New("", zap.NewNop())
	if c.Enabled() {
		t.Error("client without ID must report disabled")
	}
	_, err := c.Upload(context.Background(), []byte("x"))
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}
