package engine

import (
	"sync"

	"github.com/dshills/autoreplace/internal/engine/buffer"
	"github.com/dshills/autoreplace/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a span between two points.
	Range = buffer.Range

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID
)

// Engine is the main facade for the text editor engine.
type Engine struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	history *history.History
	cursor  Point

	maxUndoEntries int
	readOnly       bool
	initContent    string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.initContent != "" {
		e.buf = buffer.NewBufferFromString(e.initContent)
	} else {
		e.buf = buffer.NewBuffer()
	}
	e.history = history.NewHistory(e.maxUndoEntries)

	return e
}

// Text returns the full text.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// Line returns the text of a single line.
func (e *Engine) Line(n int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Line(n)
}

// Lines returns a copy of all lines.
func (e *Engine) Lines() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Lines()
}

// Snapshot returns a copy of all lines together with the revision they
// belong to, read under one lock.
func (e *Engine) Snapshot() ([]string, RevisionID) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Lines(), e.buf.Revision()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// Revision returns the current buffer revision.
func (e *Engine) Revision() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Revision()
}

// IsReadOnly reports whether writes are rejected.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Cursor returns the cursor position.
func (e *Engine) Cursor() Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor
}

// SetCursor moves the cursor, clamping it into the buffer.
func (e *Engine) SetCursor(p Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor = e.buf.Clamp(p)
}

// InsertText inserts text at the cursor and moves the cursor after it.
func (e *Engine) InsertText(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	cmd := history.NewReplaceCommand(e.cursor, e.cursor, text)
	return e.executeLocked(cmd, func(c *history.ReplaceCommand) Point { return c.NewEnd })
}

// Backspace deletes the character before the cursor, joining lines at
// column 0. It is a no-op at the start of the buffer.
func (e *Engine) Backspace() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	from := e.prevPointLocked(e.cursor)
	if from == e.cursor {
		return nil
	}
	cmd := history.NewReplaceCommand(from, e.cursor, "")
	return e.executeLocked(cmd, func(c *history.ReplaceCommand) Point { return c.From })
}

// DeleteForward deletes the character after the cursor.
func (e *Engine) DeleteForward() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	to := e.nextPointLocked(e.cursor)
	if to == e.cursor {
		return nil
	}
	cmd := history.NewReplaceCommand(e.cursor, to, "")
	return e.executeLocked(cmd, func(c *history.ReplaceCommand) Point { return c.From })
}

// ReplaceRange replaces [from, to) with text as a single undo unit.
// The cursor is mapped through the edit: positions before the range stay,
// positions inside it land after the new text and positions after it shift.
func (e *Engine) ReplaceRange(from, to Point, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	cmd := history.NewReplaceCommand(from, to, text)
	cursor := e.cursor
	return e.executeLocked(cmd, func(c *history.ReplaceCommand) Point {
		return mapPoint(cursor, c.From, c.To, c.NewEnd)
	})
}

// Undo reverts the last edit and restores the cursor it had before.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	cmd, err := e.history.Undo(e.buf)
	if err != nil {
		return err
	}
	if rc, ok := cmd.(*history.ReplaceCommand); ok {
		e.cursor = e.buf.Clamp(rc.CursorBefore)
	}
	return nil
}

// Redo re-applies the last undone edit.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	cmd, err := e.history.Redo(e.buf)
	if err != nil {
		return err
	}
	if rc, ok := cmd.(*history.ReplaceCommand); ok {
		e.cursor = e.buf.Clamp(rc.CursorAfter)
	}
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// UndoCount returns the number of undo entries.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// MoveLeft moves the cursor one character back, wrapping to the previous line.
func (e *Engine) MoveLeft() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor = e.prevPointLocked(e.cursor)
}

// MoveRight moves the cursor one character forward, wrapping to the next line.
func (e *Engine) MoveRight() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor = e.nextPointLocked(e.cursor)
}

// MoveUp moves the cursor one line up, clamping the column.
func (e *Engine) MoveUp() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cursor.Line > 0 {
		e.cursor = e.buf.Clamp(Point{Line: e.cursor.Line - 1, Column: e.cursor.Column})
	}
}

// MoveDown moves the cursor one line down, clamping the column.
func (e *Engine) MoveDown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cursor.Line < e.buf.LineCount()-1 {
		e.cursor = e.buf.Clamp(Point{Line: e.cursor.Line + 1, Column: e.cursor.Column})
	}
}

// MoveLineStart moves the cursor to column 0.
func (e *Engine) MoveLineStart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.Column = 0
}

// MoveLineEnd moves the cursor to the end of its line.
func (e *Engine) MoveLineEnd() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor.Column = e.buf.LineLen(e.cursor.Line)
}

// executeLocked runs cmd, records it and moves the cursor to where after says.
func (e *Engine) executeLocked(cmd *history.ReplaceCommand, after func(*history.ReplaceCommand) Point) error {
	cmd.CursorBefore = e.cursor
	if err := cmd.Execute(e.buf); err != nil {
		return err
	}
	cmd.CursorAfter = e.buf.Clamp(after(cmd))
	e.history.Push(cmd)
	e.cursor = cmd.CursorAfter
	return nil
}

func (e *Engine) prevPointLocked(p Point) Point {
	if p.Column > 0 {
		return Point{Line: p.Line, Column: p.Column - 1}
	}
	if p.Line > 0 {
		return Point{Line: p.Line - 1, Column: e.buf.LineLen(p.Line - 1)}
	}
	return p
}

func (e *Engine) nextPointLocked(p Point) Point {
	if p.Column < e.buf.LineLen(p.Line) {
		return Point{Line: p.Line, Column: p.Column + 1}
	}
	if p.Line < e.buf.LineCount()-1 {
		return Point{Line: p.Line + 1}
	}
	return p
}

// mapPoint maps p through the replacement of [from, to) by text ending at newEnd.
func mapPoint(p, from, to, newEnd Point) Point {
	switch {
	case p.Before(from):
		return p
	case p.Before(to):
		return newEnd
	case p.Line == to.Line:
		return Point{Line: newEnd.Line, Column: newEnd.Column + p.Column - to.Column}
	default:
		return Point{Line: p.Line + newEnd.Line - to.Line, Column: p.Column}
	}
}
