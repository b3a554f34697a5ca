package utils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RequestValidator is the echo.Validator behind c.Validate. Field failures
// come back as validator.ValidationErrors for ErrorResponse to render.
type RequestValidator struct {
	validate *validator.Validate
}

func NewValidator(v *validator.Validate) *RequestValidator {
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(payload any) error {
	err := rv.validate.Struct(payload)
	var misuse *validator.InvalidValidationError
	if errors.As(err, &misuse) {
		// a non-struct payload is a handler bug, not a bad request
		return fmt.Errorf("validate %T: %w", payload, err)
	}
	return err
}
