package replace

import (
	"github.com/dshills/autoreplace/internal/engine/buffer"
	"github.com/dshills/autoreplace/internal/rule"
	"github.com/dshills/autoreplace/internal/syntax"
)

// Host is the editor surface the engine drives.
type Host interface {
	// CursorPosition returns the current cursor.
	CursorPosition() buffer.Point

	// TokenAt returns the token at p, if any.
	TokenAt(p buffer.Point) (syntax.Token, bool)

	// LineTokens returns the tokens of a line in order.
	LineTokens(line int) []syntax.Token

	// ReplaceRange replaces [from, to) with text as one undoable edit.
	ReplaceRange(text string, from, to buffer.Point) error
}

// Rules looks up the rule for a completed token.
type Rules interface {
	FindByTrigger(text string) (rule.Rule, bool)
}

// Logger is the logging surface the engine needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
