package engine

import (
	"errors"

	"github.com/dshills/autoreplace/internal/engine/buffer"
	"github.com/dshills/autoreplace/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrPointOutOfRange indicates a point is outside the buffer.
	ErrPointOutOfRange = buffer.ErrPointOutOfRange

	// ErrRangeInvalid indicates an invalid range (e.g., end before start).
	ErrRangeInvalid = buffer.ErrRangeInvalid

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
