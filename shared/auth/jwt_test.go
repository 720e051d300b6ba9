package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newClaims(issuer, audience string, expiresIn time.Duration) *jwt.RegisteredClaims {
	now := time.Now()
	return &jwt.RegisteredClaims{
		Subject:   "uid-1",
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	}
}

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("portal", "portal")

	token, err := a.GenerateToken(newClaims("portal", "portal", time.Minute), "s3cret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var claims jwt.RegisteredClaims
	if err := a.ParseToken(token, "s3cret", &claims); err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "uid-1" {
		t.Errorf("subject = %q, want uid-1", claims.Subject)
	}
}

func TestJWTAuthenticator_Rejects(t *testing.T) {
	a := NewJWTAuthenticator("portal", "portal")

	tests := []struct {
		name   string
		claims *jwt.RegisteredClaims
		secret string
		want   error
	}{
		{"wrong secret", newClaims("portal", "portal", time.Minute), "other", ErrInvalidToken},
		{"wrong issuer", newClaims("someone-else", "portal", time.Minute), "s3cret", ErrInvalidToken},
		{"wrong audience", newClaims("portal", "elsewhere", time.Minute), "s3cret", ErrInvalidToken},
		{"expired", newClaims("portal", "portal", -time.Minute), "s3cret", ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := a.GenerateToken(tt.claims, "s3cret")
			if err != nil {
				t.Fatalf("GenerateToken: %v", err)
			}

			var claims jwt.RegisteredClaims
			err = a.ParseToken(token, tt.secret, &claims)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseToken error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestJWTAuthenticator_EmptySecret(t *testing.T) {
	a := NewJWTAuthenticator("portal", "portal")
	if _, err := a.GenerateToken(newClaims("portal", "portal", time.Minute), ""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
