package usecase

import (
	"context"

	"habitat/internal/domain/entity"
)

// UpdateMeInput carries the profile fields a caller may change. Empty fields
// are left untouched.
type UpdateMeInput struct {
	Email    string `validate:"omitempty,email"`
	Password string `validate:"omitempty,min=8,max=72"`
}

// UserUsecase defines the interface for account profile operations.
type UserUsecase interface {
	// GetByUsername retrieves the account identified by username.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// UpdateMe applies profile changes to the caller's own account. A new
	// password is stored hashed; a new email must not collide with another
	// account.
	UpdateMe(ctx context.Context, username string, input *UpdateMeInput) (*entity.User, error)
}
