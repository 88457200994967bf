// Package terminal is a minimal full-screen editor built on tcell.
//
// It turns tcell key events into key.Event values, feeds them to an
// editor.Editor and redraws the visible lines with a one-line status bar.
//
//	Ctrl+S  save
//	Ctrl+Q  quit
//	Ctrl+Z  undo
//	Ctrl+Y  redo
package terminal
