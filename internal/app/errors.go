package service

import "errors"

// Sentinel errors returned by service operations.
var (
	ErrLeaderNotFound  = errors.New("leader not found")
	ErrRefreshInFlight = errors.New("refresh already in flight")
	ErrNoCollaborator  = errors.New("no generative collaborator configured")
)
