package editor

import (
	"errors"

	"github.com/dshills/autoreplace/internal/engine"
	"github.com/dshills/autoreplace/internal/input/key"
)

// Editing shortcuts.
var (
	undoKey = key.MustParse("Ctrl+z")
	redoKey = key.MustParse("Ctrl+y")
)

// apply performs the edit or motion bound to ev. Unbound keys are ignored.
func (e *Editor) apply(ev key.Event) error {
	switch {
	case ev.Equals(undoKey):
		return ignoreEmptyHistory(e.eng.Undo())
	case ev.Equals(redoKey):
		return ignoreEmptyHistory(e.eng.Redo())
	case ev.IsRune():
		if ev.IsModified() {
			return nil
		}
		return e.eng.InsertText(string(ev.Rune))
	}

	if ev.IsModified() && !ev.Key.IsArrowKey() {
		return nil
	}

	switch ev.Key {
	case key.KeyEnter:
		return e.eng.InsertText("\n")
	case key.KeyTab:
		return e.eng.InsertText("\t")
	case key.KeyBackspace:
		return e.eng.Backspace()
	case key.KeyDelete:
		return e.eng.DeleteForward()
	case key.KeyLeft:
		e.eng.MoveLeft()
	case key.KeyRight:
		e.eng.MoveRight()
	case key.KeyUp:
		e.eng.MoveUp()
	case key.KeyDown:
		e.eng.MoveDown()
	case key.KeyHome:
		e.eng.MoveLineStart()
	case key.KeyEnd:
		e.eng.MoveLineEnd()
	}
	return nil
}

func ignoreEmptyHistory(err error) error {
	if errors.Is(err, engine.ErrNothingToUndo) || errors.Is(err, engine.ErrNothingToRedo) {
		return nil
	}
	return err
}
