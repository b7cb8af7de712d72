package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrMalformedOutput = errors.New("malformed model output")
)
