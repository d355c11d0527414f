package service

import (
	"context"

	"habitat/internal/domain/entity"
)

// OAuthUser carries the identity a federated provider asserted for a callback.
type OAuthUser struct {
	ID       string // Provider-assigned external id (e.g. Google's 'sub' claim).
	Email    string
	Name     string
	Provider entity.AuthProvider
}

// OAuthService handles the provider side of a federated login: building the
// authorization URL, validating the CSRF state and exchanging the callback
// code for the provider's view of the user.
type OAuthService interface {
	// BuildAuthorizationURL constructs the provider's authorization URL,
	// registering a fresh state parameter for CSRF protection.
	BuildAuthorizationURL() string

	// ValidateState checks and consumes a state parameter returned by the
	// provider callback.
	ValidateState(state string) bool

	// ExchangeCode trades an authorization code for the provider's user
	// identity.
	ExchangeCode(ctx context.Context, code string) (*OAuthUser, error)
}
