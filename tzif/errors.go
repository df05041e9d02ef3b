package tzif

import "errors"

// Errors returned while decoding or querying TZif data. They are wrapped
// with context, so compare with errors.Is.
var (
	ErrBadMagic            = errors.New("invalid magic")
	ErrUnsupportedVersion  = errors.New("unsupported version")
	ErrInconsistentCounts  = errors.New("inconsistent header counts")
	ErrTruncatedData       = errors.New("truncated data")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrUnsortedTransitions = errors.New("transition times not in ascending order")
	ErrInvalidQuery        = errors.New("invalid transition index")
)
