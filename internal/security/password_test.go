package security_test

import (
	"strings"
	"testing"

	"github.com/PedroSilva44/sistema-de-login/internal/security"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPassword("abcdef")

	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if hash == "abcdef" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt digest, got %q", hash)
	}

	if err := security.CheckPassword(hash, "abcdef"); err != nil {
		t.Fatalf("CheckPassword(correct) = %v, want nil", err)
	}

	if err := security.CheckPassword(hash, "wrongpass"); err == nil {
		t.Fatal("CheckPassword(wrong) = nil, want error")
	}
}

func TestCheckPasswordMalformedDigest(t *testing.T) {
	// a broken digest behaves like a mismatch, it never panics
	if err := security.CheckPassword("not-a-bcrypt-hash", "abcdef"); err == nil {
		t.Fatal("CheckPassword(malformed digest) = nil, want error")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := security.HashPassword("abcdef")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	h2, err := security.HashPassword("abcdef")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
}
