package domain

import (
	"errors"
	"fmt"
)

var (
	ErrListingNotFound      = errors.New("listing not found")
	ErrFavoriteNotFound     = errors.New("favorite not found")
	ErrDuplicateFavorite    = errors.New("favorite already exists")
	ErrInvalidListingData   = errors.New("invalid listing data")
	ErrUnauthorized         = errors.New("authentication required")
	ErrForbidden            = errors.New("user not authorized to perform this action")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrPhotoLimitExceeded   = errors.New("photo attachment limit reached")
	ErrPhotoIndexOutOfRange = errors.New("photo index out of range")
)

// ValidationError names the draft field that failed validation. It unwraps to
// ErrInvalidListingData so callers can match the whole class with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid listing data: field %q %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidListingData
}
