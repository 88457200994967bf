package rule

import "errors"

// Errors returned by store operations.
var (
	// ErrRuleNotFound indicates no rule has the given identifier.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrDisabledTrigger indicates a rule whose trigger can never match.
	ErrDisabledTrigger = errors.New("trigger is empty")

	// ErrShadowedTrigger indicates a rule hidden by an earlier rule with the same trigger.
	ErrShadowedTrigger = errors.New("trigger shadowed by earlier rule")
)
