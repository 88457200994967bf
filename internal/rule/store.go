package rule

import (
	"sync"
)

// Store is an ordered collection of rules.
type Store struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewStore creates a store holding copies of the given rules, in order.
func NewStore(rules ...Rule) *Store {
	s := &Store{}
	s.rules = append(s.rules, rules...)
	return s
}

// AddRule appends a rule with a fresh identifier and default values
// and returns it.
func (s *Store) AddRule() Rule {
	r := New()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules = append(s.rules, r)
	return r
}

// Append adds an existing rule to the end of the store. A rule without an
// identifier is given one.
func (s *Store) Append(r Rule) Rule {
	if r.ID == "" {
		r.ID = NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules = append(s.rules, r)
	return r
}

// RemoveRule removes the rule with the given identifier.
// It reports whether a rule was removed; an unknown id is not an error.
func (s *Store) RemoveRule(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.rules = append(s.rules[:idx:idx], s.rules[idx+1:]...)
	return true
}

// FindByTrigger returns the first rule, in store order, whose trigger is
// usable and equals text exactly.
func (s *Store) FindByTrigger(text string) (Rule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rules {
		if r.Matches(text) {
			return r, true
		}
	}
	return Rule{}, false
}

// Get returns the rule with the given identifier.
func (s *Store) Get(id string) (Rule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return Rule{}, false
	}
	return s.rules[idx], true
}

// All returns a copy of every rule in display order.
func (s *Store) All() []Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}

// Replace swaps the entire rule list.
func (s *Store) Replace(rules []Rule) {
	next := make([]Rule, len(rules))
	copy(next, rules)

	s.mu.Lock()
	s.rules = next
	s.mu.Unlock()
}

// SetTrigger updates the trigger of a rule.
func (s *Store) SetTrigger(id, trigger string) error {
	return s.update(id, func(r *Rule) { r.Trigger = trigger })
}

// SetReplacement updates the replacement text of a rule.
func (s *Store) SetReplacement(id, replacement string) error {
	return s.update(id, func(r *Rule) { r.Replacement = replacement })
}

// SetApplyOnPaste updates the apply-on-paste flag of a rule.
func (s *Store) SetApplyOnPaste(id string, v bool) error {
	return s.update(id, func(r *Rule) { r.ApplyOnPaste = v })
}

// SetExcludeCodeBlocks updates the exclude-code-blocks flag of a rule.
func (s *Store) SetExcludeCodeBlocks(id string, v bool) error {
	return s.update(id, func(r *Rule) { r.ExcludeCodeBlocks = v })
}

func (s *Store) update(id string, fn func(r *Rule)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return ErrRuleNotFound
	}
	fn(&s.rules[idx])
	return nil
}

// indexLocked returns the position of id or -1. Caller holds the lock.
func (s *Store) indexLocked(id string) int {
	for i, r := range s.rules {
		if r.ID == id {
			return i
		}
	}
	return -1
}
