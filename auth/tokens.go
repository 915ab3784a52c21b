package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is the single error for every token failure: bad signature,
// malformed or expired token, missing subject, missing or non-positive uid.
// Callers must not learn which one it was.
var ErrUnauthorized = errors.New("invalid token")

// Claims carried by an access token. Subject is the user's email; UserID is
// the numeric users.id the collection and stats services scope their data by.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HMAC-signed access tokens. Every service
// in a deployment builds one from the same shared secret and algorithm; trust
// between the decoupled processes rests entirely on that secret.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewTokenService(secret, alg string, ttlMinutes int) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}

	method := jwt.GetSigningMethod(alg)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", alg)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %s is not an HMAC method", alg)
	}

	if ttlMinutes == 0 {
		ttlMinutes = 60
	}

	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

// Issue creates an access token for the given subject (email) and user id.
func (s *TokenService) Issue(subject string, userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("user id must be positive, got %d", userID)
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Validate verifies signature and expiry and returns the subject and user id.
// Any failure collapses to ErrUnauthorized.
func (s *TokenService) Validate(token string) (string, int64, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return "", 0, ErrUnauthorized
	}

	if claims.Subject == "" || claims.UserID <= 0 {
		return "", 0, ErrUnauthorized
	}

	return claims.Subject, claims.UserID, nil
}
