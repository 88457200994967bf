package history

import (
	"fmt"

	"github.com/dshills/autoreplace/internal/engine/buffer"
)

// Command represents an edit action that can be executed and undone.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(buf *buffer.Buffer) error

	// Undo reverses the command and returns an error if it fails.
	Undo(buf *buffer.Buffer) error

	// Description returns a human-readable description of the command.
	Description() string
}

// ReplaceCommand replaces the text in [From, To) with Text.
// After Execute, NewEnd holds the point after the inserted text.
type ReplaceCommand struct {
	From buffer.Point
	To   buffer.Point
	Text string

	// CursorBefore and CursorAfter are restored on undo and redo.
	CursorBefore buffer.Point
	CursorAfter  buffer.Point

	NewEnd  buffer.Point
	oldText string
}

// NewReplaceCommand creates a replace command. From == To inserts,
// empty Text deletes.
func NewReplaceCommand(from, to buffer.Point, text string) *ReplaceCommand {
	return &ReplaceCommand{From: from, To: to, Text: text}
}

// Execute applies the replacement, capturing the text it overwrites.
func (c *ReplaceCommand) Execute(buf *buffer.Buffer) error {
	old, err := buf.TextRange(c.From, c.To)
	if err != nil {
		return fmt.Errorf("replace %s: %w", buffer.NewRange(c.From, c.To), err)
	}
	end, err := buf.Replace(c.From, c.To, c.Text)
	if err != nil {
		return fmt.Errorf("replace %s: %w", buffer.NewRange(c.From, c.To), err)
	}
	c.oldText = old
	c.NewEnd = end
	return nil
}

// Undo restores the overwritten text.
func (c *ReplaceCommand) Undo(buf *buffer.Buffer) error {
	if _, err := buf.Replace(c.From, c.NewEnd, c.oldText); err != nil {
		return fmt.Errorf("undo replace %s: %w", buffer.NewRange(c.From, c.NewEnd), err)
	}
	return nil
}

// OldText returns the text overwritten by the last Execute.
func (c *ReplaceCommand) OldText() string {
	return c.oldText
}

// Description returns a human-readable description.
func (c *ReplaceCommand) Description() string {
	switch {
	case c.From == c.To:
		return "Insert"
	case c.Text == "":
		return "Delete"
	default:
		return "Replace"
	}
}
