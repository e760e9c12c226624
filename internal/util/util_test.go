package util

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-session-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("user-123", "alice@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateJWT returned empty token")
	}

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT returned error: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("subject = %q, want %q", claims.Subject, "user-123")
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", claims.Email, "alice@example.com")
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-123", "alice@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if _, err := ValidateJWT(token, "a-different-secret"); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateJWT("user-123", "alice@example.com", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if _, err := ValidateJWT(token, testSecret); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestValidateJWTTampered(t *testing.T) {
	token, err := GenerateJWT("user-123", "alice@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token does not look like a JWT: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA"
	if _, err := ValidateJWT(tampered, testSecret); err == nil {
		t.Fatal("expected error for tampered signature")
	}
}

func TestValidateJWTGarbage(t *testing.T) {
	if _, err := ValidateJWT("not-a-token", testSecret); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
