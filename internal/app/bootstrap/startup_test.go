package bootstrap

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestValidateConfig(t *testing.T) {
	base := AppConfig{
		MongoURI:    "mongodb://localhost:27017",
		JWTSecret:   "secret",
		TokenExpiry: 168 * time.Hour,
	}

	if err := ValidateConfig(nil, base, zap.NewNop()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := base
	bad.MongoURI = "not-a-mongo-uri"
	if err := ValidateConfig(nil, bad, zap.NewNop()); err == nil {
		t.Error("malformed mongo URI must be rejected")
	}

	bad = base
	bad.JWTSecret = ""
	if err := ValidateConfig(nil, bad, zap.NewNop()); err == nil {
		t.Error("empty jwt_secret must be rejected")
	}

	bad = base
	bad.TokenExpiry = 0
	if err := ValidateConfig(nil, bad, zap.NewNop()); err == nil {
		t.Error("zero token_expiry must be rejected")
	}
}
