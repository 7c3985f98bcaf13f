package merge

import "errors"

// Sentinel kinds for merge errors.
var (
	ErrDuplicate   = errors.New("record already exists")
	ErrMissingName = errors.New("discovered profile has no name")
)
