package rule

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Finding describes a problem with one rule.
type Finding struct {
	RuleID string
	Index  int
	Err    error
}

// Error implements the error interface.
func (f *Finding) Error() string {
	return fmt.Sprintf("rule %d (%s): %v", f.Index+1, f.RuleID, f.Err)
}

// Unwrap returns the underlying sentinel.
func (f *Finding) Unwrap() error {
	return f.Err
}

// Lint reports rules that can never fire: disabled triggers and triggers
// shadowed by an earlier rule. It returns nil when every rule is reachable.
func Lint(rules []Rule) error {
	var result *multierror.Error
	seen := make(map[string]string, len(rules))

	for i, r := range rules {
		if !r.Enabled() {
			result = multierror.Append(result, &Finding{RuleID: r.ID, Index: i, Err: ErrDisabledTrigger})
			continue
		}
		if first, ok := seen[r.Trigger]; ok {
			result = multierror.Append(result, &Finding{
				RuleID: r.ID,
				Index:  i,
				Err:    fmt.Errorf("%w %s", ErrShadowedTrigger, first),
			})
			continue
		}
		seen[r.Trigger] = r.ID
	}

	return result.ErrorOrNil()
}
