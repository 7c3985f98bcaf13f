package ai

import "errors"

// Sentinel kinds for collaborator errors.
var (
	ErrEmptyAPIKey   = errors.New("api key must not be empty")
	ErrEmptyResponse = errors.New("empty model response")
)
