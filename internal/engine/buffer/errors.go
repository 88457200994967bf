package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrPointOutOfRange indicates a line or column outside the buffer.
	ErrPointOutOfRange = errors.New("point out of range")

	// ErrRangeInvalid indicates a range whose start comes after its end.
	ErrRangeInvalid = errors.New("invalid range: start after end")
)
