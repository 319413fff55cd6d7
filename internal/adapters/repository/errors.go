package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNoSession = errors.New("no signed-in user")
	ErrPersist   = errors.New("persist failed")
)
