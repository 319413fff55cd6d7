package history

import "errors"

// ErrExport is returned when the CSV export cannot be written.
var ErrExport = errors.New("history export failed")
