package authz

import (
	"fmt"

	apperrors "vessel-orders/pkg/errors"
)

// ValidationError reports an enum value outside the known set. It means the
// caller handed the engine corrupt or mismatched data, not that a user was
// refused.
type ValidationError struct {
	Kind  string
	Value string
}

func newValidationError(kind, value string) *ValidationError {
	return &ValidationError{Kind: kind, Value: value}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Kind, e.Value)
}

func (e *ValidationError) Unwrap() error { return apperrors.ErrInvalidInput }

// DeniedError is a policy refusal carrying the user-facing reason.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string { return e.Reason }

func (e *DeniedError) Unwrap() error { return apperrors.ErrForbidden }
