package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is carried by both tokens of a session. Role is resolved at
// sign-in (or refresh) and is not re-read per request.
type JWTClaims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens is the token pair handed to the client.
type Tokens struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}
