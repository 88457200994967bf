// Package buffer provides the line-oriented text buffer behind the editor.
//
// Text is stored as a slice of lines without terminators. Positions are
// Points: a 0-indexed line and a 0-indexed column counted in runes, which
// keeps "the cursor moved one column" equal to "one character was typed"
// for any script.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("hello\nworld")
//
//	// Replace "world" with "there"
//	end, _ := buf.Replace(buffer.Point{Line: 1}, buffer.Point{Line: 1, Column: 5}, "there")
//	// end == Point{Line: 1, Column: 5}
//
//	buf.Text() // "hello\nthere"
//
// Every successful Replace bumps the buffer revision, which callers use to
// invalidate derived state such as tokenization caches.
//
// Buffer is not synchronized; the engine facade serializes access.
package buffer
