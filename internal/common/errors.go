// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is / errors.As to match them.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Photo upload errors.
	ErrUnsupportedImage = errors.New("unsupported image data")
)

// DuplicateKeyError reports a violated uniqueness constraint on a single field.
// It matches ErrorAlreadyExists with errors.Is.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrorAlreadyExists
}
