package plugin

import "errors"

// Plugin errors.
var (
	// ErrAlreadyLoaded is returned when loading a loaded plugin.
	ErrAlreadyLoaded = errors.New("plugin is already loaded")

	// ErrNotLoaded is returned when using an unloaded plugin.
	ErrNotLoaded = errors.New("plugin is not loaded")

	// ErrAlreadyAttached is returned when attaching an editor twice.
	ErrAlreadyAttached = errors.New("editor is already attached")

	// ErrNotAttached is returned when detaching an unknown editor.
	ErrNotAttached = errors.New("editor is not attached")

	// ErrNilEditor is returned when attaching a nil editor.
	ErrNilEditor = errors.New("editor is nil")
)
