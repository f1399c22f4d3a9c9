// Package auth implements the authorization gate. A caller proves control of
// a principal with a signed bearer token issued by the external identity
// provider; this package only verifies, it never issues in production.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Common errors for principal verification.
var (
	ErrInvalidProof      = errors.New("invalid proof")
	ErrPrincipalMismatch = errors.New("proof does not match claimed principal")
)

// Authenticator verifies that a caller controls the principal it claims.
// Verification is a pure check: it performs no storage reads or writes.
type Authenticator interface {
	// Authenticate extracts and verifies the principal carried by proof.
	Authenticate(ctx context.Context, proof string) (string, error)
}

// Claims are the token claims carried by a proof. The principal travels in
// the registered subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenAuthenticator verifies HMAC-signed bearer tokens.
type TokenAuthenticator struct {
	secret []byte
}

var _ Authenticator = (*TokenAuthenticator)(nil)

// NewTokenAuthenticator creates a TokenAuthenticator with the shared secret.
func NewTokenAuthenticator(secret string) *TokenAuthenticator {
	return &TokenAuthenticator{secret: []byte(secret)}
}

// Authenticate parses and verifies proof, returning the principal it proves.
func (a *TokenAuthenticator) Authenticate(_ context.Context, proof string) (string, error) {
	token, err := jwt.ParseWithClaims(proof, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidProof
	}
	return claims.Subject, nil
}

// Verify returns nil iff proof demonstrates control of principal. The API
// surface authenticates with Authenticate and carries the principal in the
// request context; Verify backs tests and tooling that hold both sides.
func (a *TokenAuthenticator) Verify(ctx context.Context, principal, proof string) error {
	subject, err := a.Authenticate(ctx, proof)
	if err != nil {
		return err
	}
	if subject != principal {
		return ErrPrincipalMismatch
	}
	return nil
}

// GenerateToken issues a proof for a principal. The production issuer lives
// outside this service; this is used by tests and local tooling.
func GenerateToken(principal, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
