package auth

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func newTestTokenService(t *testing.T, secret string, ttlMinutes int) *TokenService {
	t.Helper()
	svc, err := NewTokenService(secret, "HS256", ttlMinutes)
	if err != nil {
		t.Fatalf("failed to create token service: %v", err)
	}
	return svc
}

func TestIssueValidateRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 60)

	token, err := svc.Issue("gamer@example.com", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	subject, userID, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if subject != "gamer@example.com" {
		t.Errorf("expected subject gamer@example.com, got %q", subject)
	}
	if userID != 7 {
		t.Errorf("expected user id 7, got %d", userID)
	}
}

func TestIssueRejectsNonPositiveUserID(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 60)

	for _, userID := range []int64{0, -1} {
		if _, err := svc.Issue("gamer@example.com", userID); err == nil {
			t.Errorf("expected error issuing token for user id %d", userID)
		}
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	// Negative TTL produces a token that is already expired.
	svc := newTestTokenService(t, "test-secret", -1)

	token, err := svc.Issue("gamer@example.com", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, _, err := svc.Validate(token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-one", 60)
	verifier := newTestTokenService(t, "secret-two", 60)

	token, err := issuer.Issue("gamer@example.com", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, _, err := verifier.Validate(token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestValidateRejectsMalformedTokens(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 60)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, _, err := svc.Validate(token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized for token %q, got %v", token, err)
		}
	}
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 60)

	claims := Claims{UserID: 7, RegisteredClaims: jwt.RegisteredClaims{Subject: "gamer@example.com"}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, _, err := svc.Validate(unsigned); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for alg=none token, got %v", err)
	}
}

func TestValidateRejectsMissingClaims(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 60)

	// A token signed with the right secret but without sub/uid claims.
	bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{})
	token, err := bare.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, _, err := svc.Validate(token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for token without claims, got %v", err)
	}
}

func TestNewTokenServiceRejectsBadConfig(t *testing.T) {
	if _, err := NewTokenService("", "HS256", 60); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewTokenService("secret", "RS256", 60); err == nil {
		t.Error("expected error for non-HMAC algorithm")
	}
	if _, err := NewTokenService("secret", "bogus", 60); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}
