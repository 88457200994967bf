package replace

import (
	"sync"

	"github.com/dshills/autoreplace/internal/engine/buffer"
	"github.com/dshills/autoreplace/internal/input/key"
	"github.com/dshills/autoreplace/internal/syntax"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine is the replace-while-typing state machine. Its only state is the
// cursor position captured on the last key-down.
type Engine struct {
	mu      sync.Mutex
	prev    buffer.Point
	hasPrev bool

	rules  Rules
	logger Logger
	stats  Stats
}

// Stats counts key-up outcomes.
type Stats struct {
	KeyUps     int
	Replaced   int
	Suppressed int
	Failed     int
}

// New creates an engine that consults rules.
func New(rules Rules, opts ...Option) *Engine {
	e := &Engine{
		rules:  rules,
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KeyDown records the cursor position before the key takes effect.
// It runs for every key; the key itself is not inspected.
func (e *Engine) KeyDown(h Host, _ key.Event) {
	pos := h.CursorPosition()

	e.mu.Lock()
	e.prev = pos
	e.hasPrev = true
	e.mu.Unlock()
}

// KeyUp classifies the keystroke from the cursor delta and, when it
// completed a token, applies the first matching rule.
func (e *Engine) KeyUp(h Host, _ key.Event) Outcome {
	e.mu.Lock()
	prev, ok := e.prev, e.hasPrev
	e.stats.KeyUps++
	e.mu.Unlock()

	if !ok {
		return Outcome{Kind: OutcomeIgnored}
	}

	out := e.evaluate(h, prev, h.CursorPosition())
	e.record(out)
	return out
}

// Stats returns a copy of the outcome counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// Reset forgets the recorded key-down position.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.hasPrev = false
	e.mu.Unlock()
}

func (e *Engine) evaluate(h Host, prev, cur buffer.Point) Outcome {
	tok, line, resolved := e.completedToken(h, prev, cur)
	if !resolved {
		return Outcome{Kind: OutcomeIgnored}
	}
	if tok == nil {
		return Outcome{Kind: OutcomeNoToken, Line: line}
	}
	return e.apply(h, *tok, line)
}

// completedToken returns the token finished by the move from prev to cur and
// the line it belongs to. resolved is false when the move does not complete
// a token; tok is nil when it should have but the host has none.
func (e *Engine) completedToken(h Host, prev, cur buffer.Point) (tok *syntax.Token, line int, resolved bool) {
	switch {
	case cur.Line == prev.Line && cur.Column-prev.Column == 1:
		first, ok := h.TokenAt(cur)
		if !ok {
			return nil, cur.Line, true
		}
		// Re-resolve the token beginning at first.Start once the inserted
		// character has settled. TokenAt at that column would prefer a
		// punctuation token ending there, as in "(btw".
		for _, settled := range h.LineTokens(cur.Line) {
			if settled.Start == first.Start {
				return &settled, cur.Line, true
			}
		}
		return nil, cur.Line, true

	case cur.Line-prev.Line == 1:
		toks := h.LineTokens(prev.Line)
		if len(toks) == 0 {
			return nil, prev.Line, true
		}
		last := toks[len(toks)-1]
		return &last, prev.Line, true
	}

	return nil, 0, false
}

func (e *Engine) apply(h Host, tok syntax.Token, line int) Outcome {
	out := Outcome{Line: line, Token: tok}

	r, ok := e.rules.FindByTrigger(tok.Text)
	if !ok {
		out.Kind = OutcomeNoRule
		return out
	}
	out.Rule = r

	if r.ExcludeCodeBlocks && tok.InCodeRegion() {
		out.Kind = OutcomeSuppressed
		return out
	}

	from := buffer.Point{Line: line, Column: tok.Start}
	to := buffer.Point{Line: line, Column: tok.End}
	if err := h.ReplaceRange(r.Replacement, from, to); err != nil {
		out.Kind = OutcomeFailed
		out.Err = err
		return out
	}

	out.Kind = OutcomeReplaced
	return out
}

func (e *Engine) record(out Outcome) {
	e.mu.Lock()
	switch out.Kind {
	case OutcomeReplaced:
		e.stats.Replaced++
	case OutcomeSuppressed:
		e.stats.Suppressed++
	case OutcomeFailed:
		e.stats.Failed++
	}
	e.mu.Unlock()

	switch out.Kind {
	case OutcomeReplaced, OutcomeSuppressed:
		e.logger.Debug("autoreplace: %s", out)
	case OutcomeFailed:
		e.logger.Warn("autoreplace: %s", out)
	}
}
