package wizard

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrUnknownSubject = errors.New("unknown subject")
	ErrUnknownTopic   = errors.New("unknown topic")
	ErrIncomplete     = errors.New("correct and wrong counts are required")
	ErrInvalidInput   = errors.New("counts must be non-negative integers")
	ErrNoPreviousStep = errors.New("no previous step")
	ErrCommitted      = errors.New("entry already submitted")
	ErrWrongStep      = errors.New("action not allowed at this step")
)
