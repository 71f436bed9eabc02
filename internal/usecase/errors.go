package usecase

import "errors"

// Sentinel errors shared by all services. HTTP handlers map these to
// status codes at the edge.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
