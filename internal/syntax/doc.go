// Package syntax splits editor lines into tokens and classifies them.
//
// Tokens follow Unicode word boundaries (UAX #29), so a line such as
// "say btw, ok" yields the tokens "say", " ", "btw", ",", " ", "ok". Each
// token carries its rune column span and a Type (word, space or
// punctuation).
//
// When markdown code detection is enabled the tokenizer also marks tokens
// that sit inside code: fenced or indented code blocks and inline code
// spans. The document is parsed with goldmark once per buffer revision.
//
//	tok := syntax.NewTokenizer(eng)
//	t, ok := tok.TokenAt(buffer.Point{Line: 0, Column: 3})
//	if ok && t.InCodeRegion() {
//	    // inside `code`
//	}
package syntax
