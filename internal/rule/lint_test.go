package rule

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
)

func TestLintClean(t *testing.T) {
	if err := Lint([]Rule{newRule("a", "b"), newRule("c", "d")}); err != nil {
		t.Errorf("Lint() = %v, want nil", err)
	}
	if err := Lint(nil); err != nil {
		t.Errorf("Lint(nil) = %v, want nil", err)
	}
}

func TestLintFindings(t *testing.T) {
	rules := []Rule{
		newRule("ty", "thank you"),
		newRule(" ", "blank"),
		newRule("ty", "typescript"),
	}

	err := Lint(rules)
	if err == nil {
		t.Fatal("Lint() = nil, want findings")
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("Lint() error type = %T, want *multierror.Error", err)
	}
	if len(merr.Errors) != 2 {
		t.Fatalf("got %d findings, want 2: %v", len(merr.Errors), err)
	}

	var f *Finding
	if !errors.As(merr.Errors[0], &f) || f.Index != 1 || !errors.Is(f, ErrDisabledTrigger) {
		t.Errorf("first finding = %v, want disabled trigger at index 1", merr.Errors[0])
	}
	if !errors.As(merr.Errors[1], &f) || f.RuleID != rules[2].ID || !errors.Is(f, ErrShadowedTrigger) {
		t.Errorf("second finding = %v, want shadowed trigger for %s", merr.Errors[1], rules[2].ID)
	}
}
