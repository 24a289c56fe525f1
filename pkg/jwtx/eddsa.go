// Package jwtx signs and verifies the service's EdDSA access tokens.
// The service runs with a single ephemeral Ed25519 key generated at boot;
// restarting invalidates outstanding tokens, which is acceptable for the
// short access-token TTL in use.
package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a serialized JWT and returns its claims.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// Signer signs claims with an Ed25519 private key.
type Signer struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// GenerateSigner creates a Signer with a fresh Ed25519 keypair.
func GenerateSigner(kid string) (*Signer, error) {
	pub, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate ed25519 key: %w", err)
	}
	return &Signer{kid: kid, key: key, pub: pub}, nil
}

func (s *Signer) KID() string { return s.kid }

// Sign serializes and signs the claims as an EdDSA JWT.
func (s *Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// Verifier returns a Verifier bound to this signer's public key and the
// given expected issuer.
func (s *Signer) Verifier(issuer string) Verifier {
	return &eddsaVerifier{kid: s.kid, pub: s.pub, issuer: issuer}
}

type eddsaVerifier struct {
	kid    string
	pub    ed25519.PublicKey
	issuer string
}

func (v *eddsaVerifier) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid != v.kid {
			return nil, fmt.Errorf("jwtx: unknown kid %q", kid)
		}
		return v.pub, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("jwtx: invalid token claims")
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return nil, err
	}

	return claims, nil
}
