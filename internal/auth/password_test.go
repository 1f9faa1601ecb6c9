package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt.MinCost keeps these tests fast; the logic is cost-independent.
func newTestPasswordService() *PasswordService {
	return NewPasswordService(bcrypt.MinCost)
}

func TestHashAndVerify(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("Hash returned the plaintext")
	}

	if err := ps.Verify(hash, "hunter2"); err != nil {
		t.Errorf("Verify with correct password: %v", err)
	}
	if err := ps.Verify(hash, "wrong"); err == nil {
		t.Error("Verify accepted the wrong password")
	}
}

func TestHash_SamePasswordDifferentHashes(t *testing.T) {
	ps := newTestPasswordService()

	h1, err := ps.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := ps.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical — salt missing?")
	}
}

func TestHash_RejectsOverlongPassword(t *testing.T) {
	ps := newTestPasswordService()
	if _, err := ps.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("Hash accepted a password over 72 bytes")
	}
}

func TestNewPasswordService_ClampsBadCost(t *testing.T) {
	ps := NewPasswordService(99)
	if ps.cost != DefaultCost {
		t.Errorf("cost = %d, want DefaultCost %d", ps.cost, DefaultCost)
	}
}
