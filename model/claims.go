package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims identifies a live session. Subject holds the card number and
// ID holds the session id.
type SessionClaims struct {
	jwt.RegisteredClaims
}
