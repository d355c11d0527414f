// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "habitat/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a validator.Validate instance for echo.
type Validator struct {
	validate *validator.Validate
}

// New creates the request validator used by the HTTP server.
func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks the struct tags on a bound request payload.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
