package replace

import (
	"fmt"

	"github.com/dshills/autoreplace/internal/rule"
	"github.com/dshills/autoreplace/internal/syntax"
)

// Kind classifies what a key-up did.
type Kind uint8

// Outcome kinds.
const (
	// OutcomeIgnored means the cursor delta did not complete a token.
	OutcomeIgnored Kind = iota

	// OutcomeNoToken means no token could be resolved.
	OutcomeNoToken

	// OutcomeNoRule means the token matched no rule.
	OutcomeNoRule

	// OutcomeSuppressed means the matching rule excludes code regions and
	// the token is inside one.
	OutcomeSuppressed

	// OutcomeReplaced means the token was replaced.
	OutcomeReplaced

	// OutcomeFailed means the host rejected the replacement.
	OutcomeFailed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeNoToken:
		return "no-token"
	case OutcomeNoRule:
		return "no-rule"
	case OutcomeSuppressed:
		return "suppressed"
	case OutcomeReplaced:
		return "replaced"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome describes the result of one key-up.
type Outcome struct {
	Kind Kind

	// Line is the line the token was evaluated on.
	Line int

	// Token is the resolved token, when there was one.
	Token syntax.Token

	// Rule is the matched rule, when there was one.
	Rule rule.Rule

	// Err is set for OutcomeFailed.
	Err error
}

// Fired reports whether a replacement was made.
func (o Outcome) Fired() bool {
	return o.Kind == OutcomeReplaced
}

// String returns a short description for logs.
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeIgnored, OutcomeNoToken:
		return o.Kind.String()
	case OutcomeNoRule:
		return fmt.Sprintf("%s %q line %d", o.Kind, o.Token.Text, o.Line)
	case OutcomeFailed:
		return fmt.Sprintf("%s %q line %d: %v", o.Kind, o.Token.Text, o.Line, o.Err)
	default:
		return fmt.Sprintf("%s %q line %d rule %s", o.Kind, o.Token.Text, o.Line, o.Rule.ID)
	}
}
