package security_test

import (
	"testing"

	"github.com/southsteak/ordering-backend/pkg/config"
	"github.com/southsteak/ordering-backend/pkg/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}

	encoded, err := security.HashPassword("medium-rare", cfg)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	ok, err := security.VerifyPassword("medium-rare", encoded)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}

	ok, err = security.VerifyPassword("well-done", encoded)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch to fail verification")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := security.VerifyPassword("anything", "not-a-hash"); err != security.ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}
