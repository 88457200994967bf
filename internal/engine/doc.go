// Package engine provides the text editing facade used by the editor.
//
// The engine combines a line buffer, a single cursor and undo/redo history
// behind one thread-safe API:
//
//	e := engine.New(engine.WithContent("hello"))
//	e.SetCursor(engine.Point{Line: 0, Column: 5})
//	e.InsertText(" btw")             // "hello btw", cursor at (0:9)
//
//	// Replace a range; the cursor is mapped through the edit.
//	e.ReplaceRange(engine.Point{Line: 0, Column: 6}, engine.Point{Line: 0, Column: 9}, "by the way")
//	e.Cursor()                       // (0:16)
//
//	e.Undo()                         // "hello btw", cursor at (0:9)
//
// Every mutation is recorded as one undo unit.
//
// # Thread Safety
//
// All Engine operations are thread-safe. Reads take a shared lock and
// writes an exclusive one.
package engine
