package syntax

import "fmt"

// TokenType represents the lexical type of a token.
type TokenType uint8

// Token types.
const (
	TokenNone TokenType = iota
	TokenWord
	TokenSpace
	TokenPunctuation
)

// String returns the string representation of a token type.
func (t TokenType) String() string {
	switch t {
	case TokenWord:
		return "word"
	case TokenSpace:
		return "space"
	case TokenPunctuation:
		return "punctuation"
	default:
		return "none"
	}
}

// Region identifies the markdown construct a token sits in.
type Region uint8

// Regions.
const (
	RegionText Region = iota
	RegionCodeBlock
	RegionInlineCode
)

// String returns the string representation of a region.
func (r Region) String() string {
	switch r {
	case RegionCodeBlock:
		return "codeblock"
	case RegionInlineCode:
		return "inline-code"
	default:
		return "text"
	}
}

// Token is a contiguous span of text on one line.
type Token struct {
	// Text is the token text.
	Text string

	// Start is the first column (0-indexed, runes).
	Start int

	// End is the column after the last rune.
	End int

	Type   TokenType
	Region Region
}

// Len returns the length of the token in runes.
func (t Token) Len() int {
	return t.End - t.Start
}

// Contains returns true if col falls inside the token or on either edge.
func (t Token) Contains(col int) bool {
	return col >= t.Start && col <= t.End
}

// InCodeRegion reports whether the token is inside fenced, indented or
// inline code.
func (t Token) InCodeRegion() bool {
	return t.Region == RegionCodeBlock || t.Region == RegionInlineCode
}

// Class returns a space separated class string such as "word codeblock".
func (t Token) Class() string {
	if t.Region == RegionText {
		return t.Type.String()
	}
	return t.Type.String() + " " + t.Region.String()
}

// String returns a debug representation.
func (t Token) String() string {
	return fmt.Sprintf("%q[%d:%d) %s", t.Text, t.Start, t.End, t.Class())
}
