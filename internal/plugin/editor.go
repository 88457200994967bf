package plugin

import (
	"github.com/dshills/autoreplace/internal/input/key"
	"github.com/dshills/autoreplace/internal/replace"
)

// ListenerID identifies a registered key listener.
type ListenerID uint64

// KeyListener is called for a key event in one phase.
type KeyListener func(ev key.Event)

// Editor is an editor the plugin can attach to.
type Editor interface {
	replace.Host

	// ID identifies the editor instance.
	ID() string

	// AddKeyListener registers fn for phase and returns its handle.
	AddKeyListener(phase key.Phase, fn KeyListener) ListenerID

	// RemoveKeyListener unregisters a listener. It reports whether the
	// handle was registered.
	RemoveKeyListener(id ListenerID) bool
}
