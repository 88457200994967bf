package buffer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Buffer holds the document text as lines.
type Buffer struct {
	lines    []string
	revision RevisionID
}

// NewBuffer creates an empty buffer with a single empty line.
func NewBuffer() *Buffer {
	return &Buffer{
		lines:    []string{""},
		revision: NewRevisionID(),
	}
}

// NewBufferFromString creates a buffer from text. CRLF and CR line endings
// are normalized to LF.
func NewBufferFromString(text string) *Buffer {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return &Buffer{
		lines:    strings.Split(text, "\n"),
		revision: NewRevisionID(),
	}
}

// Revision returns the current revision.
func (b *Buffer) Revision() RevisionID {
	return b.revision
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line n, or "" when n is out of range.
func (b *Buffer) Line(n int) string {
	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return b.lines[n]
}

// LineLen returns the length of line n in runes.
func (b *Buffer) LineLen(n int) int {
	return utf8.RuneCountInString(b.Line(n))
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text returns the full buffer text joined with LF.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Len returns the text length in runes, counting each line break as one.
func (b *Buffer) Len() int {
	n := len(b.lines) - 1
	for _, l := range b.lines {
		n += utf8.RuneCountInString(l)
	}
	return n
}

// End returns the point after the last character.
func (b *Buffer) End() Point {
	last := len(b.lines) - 1
	return Point{Line: last, Column: b.LineLen(last)}
}

// Validate checks that p addresses an existing position.
func (b *Buffer) Validate(p Point) error {
	if p.Line < 0 || p.Line >= len(b.lines) || p.Column < 0 || p.Column > b.LineLen(p.Line) {
		return fmt.Errorf("%w: %s", ErrPointOutOfRange, p)
	}
	return nil
}

// Clamp returns the nearest valid point to p.
func (b *Buffer) Clamp(p Point) Point {
	if p.Line < 0 {
		return Point{}
	}
	if p.Line >= len(b.lines) {
		return b.End()
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if n := b.LineLen(p.Line); p.Column > n {
		p.Column = n
	}
	return p
}

// TextRange returns the text between two points.
func (b *Buffer) TextRange(from, to Point) (string, error) {
	if err := b.checkRange(from, to); err != nil {
		return "", err
	}

	if from.Line == to.Line {
		r := []rune(b.lines[from.Line])
		return string(r[from.Column:to.Column]), nil
	}

	var sb strings.Builder
	first := []rune(b.lines[from.Line])
	sb.WriteString(string(first[from.Column:]))
	for i := from.Line + 1; i < to.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[i])
	}
	sb.WriteByte('\n')
	last := []rune(b.lines[to.Line])
	sb.WriteString(string(last[:to.Column]))
	return sb.String(), nil
}

// Replace substitutes the text in [from, to) with text and returns the
// point just after the inserted text.
func (b *Buffer) Replace(from, to Point, text string) (Point, error) {
	if err := b.checkRange(from, to); err != nil {
		return Point{}, err
	}

	head := []rune(b.lines[from.Line])[:from.Column]
	tail := []rune(b.lines[to.Line])[to.Column:]

	parts := strings.Split(text, "\n")
	inserted := make([]string, len(parts))
	copy(inserted, parts)

	end := Point{Line: from.Line + len(parts) - 1}
	lastLen := utf8.RuneCountInString(parts[len(parts)-1])
	if len(parts) == 1 {
		end.Column = from.Column + lastLen
	} else {
		end.Column = lastLen
	}

	inserted[0] = string(head) + inserted[0]
	inserted[len(inserted)-1] += string(tail)

	next := make([]string, 0, len(b.lines)-(to.Line-from.Line)+len(inserted)-1)
	next = append(next, b.lines[:from.Line]...)
	next = append(next, inserted...)
	next = append(next, b.lines[to.Line+1:]...)

	b.lines = next
	b.revision = NewRevisionID()
	return end, nil
}

// Insert inserts text at p and returns the point after it.
func (b *Buffer) Insert(p Point, text string) (Point, error) {
	return b.Replace(p, p, text)
}

func (b *Buffer) checkRange(from, to Point) error {
	if err := b.Validate(from); err != nil {
		return err
	}
	if err := b.Validate(to); err != nil {
		return err
	}
	if from.After(to) {
		return fmt.Errorf("%w: %s", ErrRangeInvalid, NewRange(from, to))
	}
	return nil
}
