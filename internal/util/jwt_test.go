package util

import (
	"engineer_connect_backend/internal/model"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("test-secret").WithClock(fixedClock(now))

	token, err := svc.Issue(42, model.Company, 24*time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 || claims.Role != model.Company {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("expiry = %v", claims.ExpiresAt.Time)
	}
}

func TestTokenExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenService("test-secret").WithClock(fixedClock(now))
	token, err := issuer.Issue(7, model.Student, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	within := NewTokenService("test-secret").WithClock(fixedClock(now.Add(59 * time.Minute)))
	if _, err := within.Verify(token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	after := NewTokenService("test-secret").WithClock(fixedClock(now.Add(2 * time.Hour)))
	if _, err := after.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenRejectsForeignSignature(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue(1, model.Admin, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenService("secret-b").Verify(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestTokenRejectsTampering(t *testing.T) {
	svc := NewTokenService("test-secret")
	token, err := svc.Issue(1, model.Student, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	if _, err := svc.Verify(strings.Join(parts, ".")); err == nil {
		t.Fatal("tampered token verified")
	}

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
