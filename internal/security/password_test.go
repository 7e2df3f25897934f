package security

import (
	"strings"
	"testing"
)

func TestHashPassword_NonDeterministicButVerifiable(t *testing.T) {
	const password = "correct horse battery staple"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Random salts mean the same password never hashes the same way twice.
	if hash1 == hash2 {
		t.Error("two hashes of the same password should differ")
	}

	// Yet both verify against the original password.
	if !VerifyPassword(password, hash1) {
		t.Error("password should verify against first hash")
	}
	if !VerifyPassword(password, hash2) {
		t.Error("password should verify against second hash")
	}

	if VerifyPassword("wrong password", hash1) {
		t.Error("wrong password must not verify")
	}
}

func TestHashPassword_EmbedsCostFactor(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(hash, "$12$") {
		t.Errorf("hash should embed cost factor 12, got %s", hash)
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Error("malformed hash must not verify")
	}
	if VerifyPassword("anything", "") {
		t.Error("empty hash must not verify")
	}
}
