package model

import "errors"

// Sentinel kinds for domain model errors.
var (
	ErrInvalidRating = errors.New("rating out of range")
)
