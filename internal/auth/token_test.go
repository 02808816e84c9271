package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret, userID, issuer string, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestVerifyValidToken(t *testing.T) {
	v := NewVerifier("secret", "idp", "")
	token := signToken(t, "secret", "u1", "idp", time.Hour)

	userID, err := v.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("user id = %q, want u1", userID)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewVerifier("secret", "", "")
	token := signToken(t, "other", "u1", "", time.Hour)

	if _, err := v.Verify(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	v := NewVerifier("secret", "", "")
	token := signToken(t, "secret", "u1", "", -time.Minute)

	if _, err := v.Verify(token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	v := NewVerifier("secret", "idp", "")
	token := signToken(t, "secret", "u1", "someone-else", time.Hour)

	if _, err := v.Verify(token); err == nil {
		t.Fatal("expected issuer error")
	}
}

func TestNewVerifierDisabledWithoutSecret(t *testing.T) {
	if v := NewVerifier("", "idp", "aud"); v != nil {
		t.Fatal("empty secret should disable verification")
	}
}
