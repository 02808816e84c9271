// Package auth verifies externally issued access tokens. The server
// does not create accounts or mint tokens; a separate identity service
// owns that. We only check the signature and read the user identity.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims the relay cares about.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 tokens against a shared secret.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewVerifier returns nil when secret is empty, which disables token
// checks entirely.
func NewVerifier(secret, issuer, audience string) *Verifier {
	if secret == "" {
		return nil
	}
	return &Verifier{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

// Verify parses and validates a token and returns the user identifier.
func (v *Verifier) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("token missing user_id")
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return "", fmt.Errorf("invalid issuer")
	}
	if v.audience != "" {
		valid := false
		for _, aud := range claims.Audience {
			if aud == v.audience {
				valid = true
				break
			}
		}
		if !valid {
			return "", fmt.Errorf("invalid audience")
		}
	}

	return claims.UserID, nil
}
