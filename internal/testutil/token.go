package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SigningKey signs tokens minted by MintToken and the fake backend.
var SigningKey = []byte("mytasks-test-secret")

// MintToken returns an HS256 JWT for subject and email expiring at exp.
func MintToken(t *testing.T, subject, email string, exp time.Time) string {
	t.Helper()
	token, err := signToken(subject, email, exp)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func signToken(subject, email string, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"iat":   exp.Add(-time.Hour).Unix(),
		"exp":   exp.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(SigningKey)
}
