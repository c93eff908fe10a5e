package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/southsteak/ordering-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "southsteak",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAdminToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	token, err := MintAdminToken(cfg, now, "admin@southsteak.ph")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseAdminToken(cfg, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Email != "admin@southsteak.ph" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.ID == "" {
		t.Fatalf("expected token id to be set")
	}
}

func TestParseAdminTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAdminToken(cfg, time.Now(), "admin@southsteak.ph")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAdminToken(other, token); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

func TestParseAdminTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAdminToken(cfg, time.Now().Add(-2*time.Hour), "admin@southsteak.ph")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseAdminToken(cfg, token); err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestMintAdminTokenValidation(t *testing.T) {
	cfg := testJWTConfig()
	if _, err := MintAdminToken(cfg, time.Now(), "  "); err == nil {
		t.Fatalf("expected error for blank email")
	}
	cfg.Secret = ""
	if _, err := MintAdminToken(cfg, time.Now(), "admin@southsteak.ph"); err == nil {
		t.Fatalf("expected error for missing secret")
	}
}
