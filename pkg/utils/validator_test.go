package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestRequestValidator(t *testing.T) {
	rv := NewValidator(validator.New())

	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, rv.Validate(&loginForm{Email: "ana@starnav.com.br", Password: "long-enough"}))
	})

	t.Run("field failures stay a bad request", func(t *testing.T) {
		err := rv.Validate(&loginForm{Email: "nope"})
		var vErrs validator.ValidationErrors
		assert.True(t, errors.As(err, &vErrs))
		assert.Len(t, vErrs, 2)
	})

	t.Run("non-struct payload is a server error", func(t *testing.T) {
		err := rv.Validate("just a string")
		var vErrs validator.ValidationErrors
		assert.False(t, errors.As(err, &vErrs))
		assert.Equal(t, 500, StatusCode(err))
	})
}
