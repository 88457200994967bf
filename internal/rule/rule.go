package rule

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Rule is a single trigger/replacement pair.
type Rule struct {
	// ID identifies the rule for its whole lifetime. It is never reused.
	ID string

	// Trigger is matched exactly, case-sensitive, against a completed token.
	Trigger string

	// Replacement is inserted in place of the token. Empty deletes the token.
	Replacement string

	// ApplyOnPaste is kept for configuration compatibility. The engine does
	// not act on it.
	ApplyOnPaste bool

	// ExcludeCodeBlocks suppresses the rule for tokens inside code regions.
	ExcludeCodeBlocks bool
}

// New returns a rule with a fresh identifier and default field values.
func New() Rule {
	return Rule{
		ID:                NewID(),
		ApplyOnPaste:      true,
		ExcludeCodeBlocks: true,
	}
}

// NewID generates a rule identifier.
func NewID() string {
	return uuid.NewString()
}

// Enabled reports whether the trigger can match anything.
func (r Rule) Enabled() bool {
	return strings.TrimSpace(r.Trigger) != ""
}

// Matches reports whether text completes this rule's trigger.
func (r Rule) Matches(text string) bool {
	return r.Enabled() && r.Trigger == text
}

// String returns a short human-readable form.
func (r Rule) String() string {
	return fmt.Sprintf("%q -> %q", r.Trigger, r.Replacement)
}
