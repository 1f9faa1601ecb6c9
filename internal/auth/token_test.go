package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-at-least-16-chars!!"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	if _, err := NewTokenService("short", time.Hour); err == nil {
		t.Error("NewTokenService accepted a short secret")
	}
}

func TestGenerateAndValidate(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate(42, "student@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	identity, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if identity.UserID != 42 {
		t.Errorf("UserID = %d, want 42", identity.UserID)
	}
	if identity.Email != "student@example.com" {
		t.Errorf("Email = %q, want student@example.com", identity.Email)
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.generateWithExpiry(1, "a@b.com", time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("generateWithExpiry: %v", err)
	}

	if _, err := ts.Validate(token); err == nil {
		t.Error("Validate accepted an expired token")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	ts := newTestTokenService(t)
	other, err := NewTokenService("another-secret-16-chars-long!!!", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := other.Generate(1, "a@b.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := ts.Validate(token); err == nil {
		t.Error("Validate accepted a token signed with a different secret")
	}
}

func TestValidate_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate(1, "a@b.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)

	if _, err := ts.Validate(strings.Join(parts, ".")); err == nil {
		t.Error("Validate accepted a tampered token")
	}
}

func TestValidate_Garbage(t *testing.T) {
	ts := newTestTokenService(t)
	if _, err := ts.Validate("not-a-jwt"); err == nil {
		t.Error("Validate accepted garbage input")
	}
}
