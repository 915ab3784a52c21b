package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Error("expected password to verify against its own hash")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPasswordRejectsOverlongInput(t *testing.T) {
	long := strings.Repeat("a", MaxPasswordBytes+1)

	if _, err := HashPassword(long); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestHashPasswordAcceptsLimitLengthInput(t *testing.T) {
	limit := strings.Repeat("a", MaxPasswordBytes)

	hash, err := HashPassword(limit)
	if err != nil {
		t.Fatalf("hash failed at the 72-byte limit: %v", err)
	}
	if !VerifyPassword(limit, hash) {
		t.Error("expected limit-length password to verify")
	}
}
