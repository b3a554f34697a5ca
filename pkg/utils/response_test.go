package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"vessel-orders/internal/authz"
	apperrors "vessel-orders/pkg/errors"
)

func TestStatusCode(t *testing.T) {
	type form struct {
		Name string `validate:"required"`
	}
	vErr := validator.New().Struct(form{})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("load: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"conflict", apperrors.ErrConflict, http.StatusConflict},
		{"invalid input", apperrors.NewInvalidInputError("bad %s", "thing"), http.StatusBadRequest},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"locked", apperrors.ErrAccountLocked, http.StatusTooManyRequests},
		{"policy denial", &authz.DeniedError{Reason: authz.ReasonEditNotPermitted}, http.StatusForbidden},
		{"engine invalid input", &authz.ValidationError{Kind: "role", Value: "PIRATE"}, http.StatusInternalServerError},
		{"validator", vErr, http.StatusBadRequest},
		{"http error", apperrors.NewHttpError(http.StatusTeapot, "", nil), http.StatusTeapot},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}
