// Package editor is a minimal text editor that hosts the replacement
// plugin.
//
// An Editor combines the engine facade (text, cursor, undo) with a
// tokenizer and dispatches every key in two phases: key-down listeners
// run before the key is applied, key-up listeners after. The plugin
// package uses those phases to detect completed tokens.
//
//	ed := editor.New(editor.WithText("hello"))
//	p.Attach(ed)
//	ed.HandleKey(key.NewRuneEvent('!', key.ModNone))
package editor
