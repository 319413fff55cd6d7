package kvstore

import "errors"

// Sentinel kinds for key-value errors.
var (
	ErrNotFound       = errors.New("key not found")
	ErrUnknownBackend = errors.New("unknown store backend")
	ErrOpen           = errors.New("open store failed")
	ErrClosed         = errors.New("store closed")
)
