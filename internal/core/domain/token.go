package domain

import "time"

// TokenClaims is the decoded content of a bearer token issued at login or signup.
type TokenClaims struct {
	UserID    string
	Username  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
