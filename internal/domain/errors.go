package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrContentNotFound = errors.New("content not found")

	// ErrInvalidLimit is returned for a negative result limit, the one
	// caller contract violation the engine rejects.
	ErrInvalidLimit = errors.New("limit must not be negative")

	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
