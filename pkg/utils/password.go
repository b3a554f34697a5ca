package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "vessel-orders/pkg/errors"
)

// bcrypt ignores input past this length, so longer passwords are refused
// instead of silently truncated.
const maxPasswordBytes = 72

// HashPassword returns the digest stored in users.password_hash.
func HashPassword(plain string) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", apperrors.NewInvalidInputError("password must be at most %d bytes", maxPasswordBytes)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// ComparePasswords returns apperrors.ErrInvalidCredentials when plain does
// not match digest. Any other error means the stored digest is unusable.
func ComparePasswords(digest, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return apperrors.ErrInvalidCredentials
	default:
		return fmt.Errorf("compare password: %w", err)
	}
}
