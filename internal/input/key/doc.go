// Package key provides key event types for the editor input path.
//
// This package defines the types used to describe keyboard input:
//
//   - Key: identifies a keyboard key (special keys or runes)
//   - Modifier: modifier keys (Ctrl, Alt, Shift, Meta)
//   - Phase: whether an event is the key going down or coming up
//   - Event: a single key transition with modifiers and timestamp
//
// Terminals only report presses, so hosts that sit on a terminal emit a
// Down event before applying the key and an Up event after it.
//
// Bindings are written as "Ctrl+Z", "Enter" or a single character and
// parsed with Parse.
package key
