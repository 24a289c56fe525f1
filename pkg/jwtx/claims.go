package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens. Kept
// short; clients are expected to re-authenticate or refresh.
const DefaultAccessTokenTTL = 15 * time.Minute

var (
	ErrIssuer  = errors.New("jwtx: issuer mismatch")
	ErrExpired = errors.New("jwtx: token expired")
	ErrNotYet  = errors.New("jwtx: token not yet valid")
)

// Claims are the access-token claims shared across the service. Additive
// changes only, to preserve compatibility with issued tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Scopes hold permission scopes, e.g. "invites:write".
	Scopes []string `json:"scopes,omitempty"`

	// Email of the authenticated account.
	Email string `json:"email,omitempty"`

	// FullName is the display name for the account.
	FullName string `json:"full_name,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for an access token.
func NewAccessClaims(
	subject, issuer string,
	scopes []string,
	email, fullName string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Scopes:   scopes,
		Email:    email,
		FullName: fullName,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer when one is expected.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token is inside its [nbf, exp) window.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYet
	}
	return nil
}
