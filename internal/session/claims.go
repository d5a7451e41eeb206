package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the bearer token fields the client reads locally. The token is
// NOT verified here: signature checking belongs to the backend. This only
// mirrors what the backend already told us, for display and for skipping a
// bootstrap round-trip on an obviously expired token.
type Claims struct {
	Email     string
	Role      string
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// PeekClaims decodes the token payload without verifying the signature.
// Returns false if the token is not a parseable JWT.
func PeekClaims(token string) (Claims, bool) {
	var tc tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &tc); err != nil {
		return Claims{}, false
	}
	out := Claims{Email: tc.Email, Role: tc.Role}
	if tc.ExpiresAt != nil {
		out.ExpiresAt = tc.ExpiresAt.Time
	}
	return out, true
}

// Expired reports whether the claims carry an expiry in the past.
// Tokens without an exp claim are never considered expired locally.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(now)
}
