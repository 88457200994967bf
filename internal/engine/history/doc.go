// Package history provides undo/redo for the editor engine.
//
// Edits are recorded as Commands that can be executed, undone and redone.
// Every buffer mutation the engine performs is one ReplaceCommand, so a
// typed character, a deleted character and a rule replacement are each a
// single undo unit:
//
//	h := history.NewHistory(1000) // keep at most 1000 undo entries
//
//	cmd := history.NewReplaceCommand(from, to, "by the way")
//	cmd.CursorBefore = cursor
//	_ = h.Execute(cmd, buf)
//
//	undone, _ := h.Undo(buf)   // restores the old text
//	cursor = undone.(*history.ReplaceCommand).CursorBefore
//
// Pushing a new command clears the redo stack.
package history
