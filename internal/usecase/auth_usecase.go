// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"habitat/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string `validate:"required,min=3,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

// LoginInput defines the data required to log in. Either identifier may be
// supplied; email wins when both are present. Identifier resolution failures
// surface as invalid credentials, not validation errors, so the tags stay
// permissive here.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// GoogleCallbackInput carries the parameters the provider sent back on the
// OAuth redirect.
type GoogleCallbackInput struct {
	Code  string `validate:"required"`
	State string `validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the issued token after a successful login.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// AuthUsecase defines the interface for authentication-related business
// operations. This is the contract the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a new local account.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and issues a token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GoogleAuthURL builds the provider authorization URL for a fresh
	// federated login attempt.
	GoogleAuthURL(ctx context.Context) string

	// GoogleCallback reconciles the provider callback into a local account
	// and issues a token.
	GoogleCallback(ctx context.Context, input *GoogleCallbackInput) (*LoginOutput, error)
}
