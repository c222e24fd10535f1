package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrForbidden             = errors.New("forbidden")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInternal              = errors.New("internal invariant violated")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
