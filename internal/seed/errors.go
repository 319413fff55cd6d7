package seed

import "errors"

// Sentinel errors for a seeding run.
var (
	ErrInvalidConfig = errors.New("invalid seed config")
	ErrRequest       = errors.New("request failed")
	ErrVerify        = errors.New("verification failed")
)
