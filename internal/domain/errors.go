package domain

import "errors"

// Domain errors
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNameRequired    = errors.New("name is required")
	ErrNameTooLong     = errors.New("name exceeds maximum length")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidMonthKey = errors.New("invalid month key")

	// ErrSnapshotNotFound is returned by a snapshot repository when no
	// state has been persisted yet. Callers start from an empty AppState.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// Validation constants
const (
	MaxAccountNameLength  = 255
	MaxCategoryNameLength = 255
	MaxDescriptionLength  = 500
)
