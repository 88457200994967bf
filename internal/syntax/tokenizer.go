package syntax

import (
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/autoreplace/internal/engine/buffer"
)

// Source supplies document lines and the revision they belong to.
type Source interface {
	Snapshot() ([]string, buffer.RevisionID)
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithCodeDetection enables or disables markdown code-region detection.
// It is enabled by default.
func WithCodeDetection(enabled bool) Option {
	return func(t *Tokenizer) {
		t.detectCode = enabled
	}
}

// Tokenizer produces tokens for the lines of a Source.
type Tokenizer struct {
	mu  sync.Mutex
	src Source

	detectCode bool

	// Cached per revision.
	revision buffer.RevisionID
	lines    []string
	regions  *codeRegions
	tokens   map[int][]Token
}

// NewTokenizer creates a tokenizer reading from src.
func NewTokenizer(src Source, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		src:        src,
		detectCode: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// LineTokens returns a copy of the tokens of a line in order. It returns
// nil for an empty or missing line.
func (t *Tokenizer) LineTokens(line int) []Token {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refreshLocked()
	toks := t.lineTokensLocked(line)
	if len(toks) == 0 {
		return nil
	}
	out := make([]Token, len(toks))
	copy(out, toks)
	return out
}

// TokenAt returns the token at p. A column on a boundary touches two
// tokens; the first one that is not whitespace wins, so the cursor right
// after a word resolves to that word.
func (t *Tokenizer) TokenAt(p buffer.Point) (Token, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refreshLocked()

	var fallback *Token
	toks := t.lineTokensLocked(p.Line)
	for i := range toks {
		tok := toks[i]
		if !tok.Contains(p.Column) {
			continue
		}
		if tok.Type != TokenSpace {
			return tok, true
		}
		if fallback == nil {
			fallback = &toks[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Token{}, false
}

// refreshLocked drops caches when the source has moved on.
func (t *Tokenizer) refreshLocked() {
	lines, rev := t.src.Snapshot()
	if t.tokens != nil && rev == t.revision {
		return
	}
	t.revision = rev
	t.lines = lines
	t.tokens = make(map[int][]Token)
	t.regions = nil
	if t.detectCode {
		t.regions = parseCodeRegions(lines)
	}
}

func (t *Tokenizer) lineTokensLocked(line int) []Token {
	if line < 0 || line >= len(t.lines) {
		return nil
	}
	if toks, ok := t.tokens[line]; ok {
		return toks
	}
	toks := Tokenize(t.lines[line])
	for i := range toks {
		toks[i].Region = t.regions.regionFor(line, toks[i].Start, toks[i].End)
	}
	t.tokens[line] = toks
	return toks
}

// Tokenize splits a single line on Unicode word boundaries.
func Tokenize(line string) []Token {
	var toks []Token
	state := -1
	col := 0
	rest := line
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		n := utf8.RuneCountInString(word)
		toks = append(toks, Token{
			Text:  word,
			Start: col,
			End:   col + n,
			Type:  classify(word),
		})
		col += n
	}
	return toks
}

func classify(word string) TokenType {
	r, _ := utf8.DecodeRuneInString(word)
	switch {
	case unicode.IsSpace(r):
		return TokenSpace
	case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), r == '_':
		return TokenWord
	default:
		return TokenPunctuation
	}
}
