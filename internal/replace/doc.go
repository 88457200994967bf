// Package replace implements replace-while-typing.
//
// An Engine watches the two halves of every keystroke. On key-down it
// remembers where the cursor was; on key-up it compares that position with
// the cursor's new position to decide whether a token was just completed:
//
//   - the cursor moved one column right on the same line: a character was
//     typed, so the token under the cursor is re-resolved from its start
//     column and evaluated on the cursor's line;
//   - the cursor moved to the next line: Enter finished the line, so the
//     last token of the previous line is evaluated on that line;
//   - anything else (no movement, moving back, jumps, pastes): nothing
//     happens and the tokenizer is not consulted.
//
// The token text is looked up in a Rules source, first match wins. A rule
// that excludes code blocks is suppressed for tokens inside code; it is not
// skipped in favor of a later rule. Otherwise the token's exact column span
// is replaced with the rule's replacement in one ReplaceRange call.
//
// The engine reacts only to key events, never to document changes, so the
// text it inserts is not re-evaluated until the user types again.
//
//	eng := replace.New(store, replace.WithLogger(logger))
//	ed.AddKeyListener(key.PhaseDown, func(ev key.Event) { eng.KeyDown(ed, ev) })
//	ed.AddKeyListener(key.PhaseUp, func(ev key.Event) { eng.KeyUp(ed, ev) })
package replace
