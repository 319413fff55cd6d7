package auth

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidCredentials = errors.New("email and password are required")
	ErrForbidden          = errors.New("teacher role required")
)
