// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "errors"

// Token verification failures. Callers treat every one of them uniformly as
// "unauthenticated"; the split exists so logs can tell the cases apart.
var (
	// ErrTokenMalformed indicates the token string is not a parsable token.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenExpired indicates the token's expiry has elapsed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenSignatureInvalid indicates the signature does not verify.
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
)

// TokenService defines the interface for issuing and verifying signed,
// time-bounded bearer tokens. Tokens are self-contained; there is no
// server-side session and no revocation path.
type TokenService interface {
	// Generate creates a signed token asserting the given subject (username).
	Generate(subject string) (string, error)

	// Validate verifies the signature and expiry of a token string and
	// returns the subject it asserts.
	Validate(tokenString string) (string, error)
}
