package security

import (
	"strings"
	"testing"

	"github.com/gamestore/admin-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	// Low-cost parameters keep the test fast.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPassword("hunter2hunter2", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("expected password to match")
	}

	ok, err = VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Error("expected mismatch")
	}
}

func TestHashesAreSalted(t *testing.T) {
	cfg := testPasswordConfig()
	first, err := HashPassword("same-password", cfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("same-password", cfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("whatever", "not-a-hash"); err == nil {
		t.Error("expected an error for a malformed hash")
	}
}

func TestGeneratePassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		password, err := GeneratePassword(12)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(password) != 12 {
			t.Fatalf("len = %d, want 12", len(password))
		}
		seen[password] = true
	}
	if len(seen) < 2 {
		t.Error("generated passwords should vary")
	}

	if _, err := GeneratePassword(0); err == nil {
		t.Error("expected an error for non-positive length")
	}
}
