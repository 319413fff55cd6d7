package drafts

import "errors"

// ErrNotFound is returned for unknown or evicted draft ids.
var ErrNotFound = errors.New("draft not found")
