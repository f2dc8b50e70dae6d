package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

// NewToken issues a signed token for the given subject, expiring after ttl.
func NewToken(jwtAuth *jwtauth.JWTAuth, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := map[string]interface{}{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return ts, nil
}

// VerifyToken checks the token signature and expiry and returns its subject.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (string, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return "", err
	}
	return t.Subject(), nil
}
