package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/autoreplace/internal/rule"
)

func TestDecode(t *testing.T) {
	data := []byte(`{
		"entries": [
			{"id": "a", "matchStr": "btw", "replacement": "by the way", "applyOnPaste": false, "excludeCodeBlocks": true},
			{"id": "b", "matchStr": "omw", "replacement": "on my way", "applyOnPaste": true, "excludeCodeBlocks": false}
		]
	}`)

	rules, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("len(rules) = %d, want 2", len(rules))
	}

	want := rule.Rule{ID: "a", Trigger: "btw", Replacement: "by the way", ApplyOnPaste: false, ExcludeCodeBlocks: true}
	if rules[0] != want {
		t.Errorf("rules[0] = %+v, want %+v", rules[0], want)
	}
	if rules[1].ID != "b" || rules[1].ExcludeCodeBlocks {
		t.Errorf("rules[1] = %+v", rules[1])
	}
}

func TestDecodeEmptyDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty object", `{}`},
		{"null", `null`},
		{"entries not array", `{"entries": {"id": "a"}}`},
		{"entries null", `{"entries": null}`},
		{"empty entries", `{"entries": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := Decode([]byte(tt.data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(rules) != 0 {
				t.Errorf("len(rules) = %d, want 0", len(rules))
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"entries": [`))
	if err == nil {
		t.Fatal("Decode() should fail on invalid JSON")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("error = %T, want *ParseError", err)
	}
}

func TestDecodeFieldDefaults(t *testing.T) {
	data := []byte(`{"entries": [
		{"id": "a", "matchStr": 5, "replacement": "x", "applyOnPaste": "yes", "excludeCodeBlocks": false}
	]}`)

	rules, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("len(rules) = %d, want 1", len(rules))
	}

	r := rules[0]
	if r.ID != "a" {
		t.Errorf("ID = %q, want a", r.ID)
	}
	if r.Trigger != "" {
		t.Errorf("Trigger = %q, want default empty", r.Trigger)
	}
	if r.Replacement != "x" {
		t.Errorf("Replacement = %q, want x", r.Replacement)
	}
	if !r.ApplyOnPaste {
		t.Error("ApplyOnPaste should default to true")
	}
	if r.ExcludeCodeBlocks {
		t.Error("ExcludeCodeBlocks should be false")
	}
}

func TestDecodeMissingFields(t *testing.T) {
	rules, err := Decode([]byte(`{"entries": [{}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("len(rules) = %d, want 1", len(rules))
	}

	r := rules[0]
	if r.ID == "" {
		t.Error("missing ID should be generated")
	}
	if !r.ApplyOnPaste || !r.ExcludeCodeBlocks {
		t.Errorf("flags = %v/%v, want true/true", r.ApplyOnPaste, r.ExcludeCodeBlocks)
	}
}

func TestDecodeSkipsNonObjects(t *testing.T) {
	rules, err := Decode([]byte(`{"entries": [1, "x", null, {"matchStr": "ty"}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(rules) != 1 || rules[0].Trigger != "ty" {
		t.Errorf("rules = %+v, want single ty rule", rules)
	}
}

func TestDecodeWrappedID(t *testing.T) {
	rules, err := Decode([]byte(`{"entries": [{"id": {"value": "abc"}, "matchStr": "ty"}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if rules[0].ID != "abc" {
		t.Errorf("ID = %q, want abc", rules[0].ID)
	}
}

func TestDecodeDuplicateIDs(t *testing.T) {
	rules, err := Decode([]byte(`{"entries": [{"id": "a"}, {"id": "a"}]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if rules[0].ID != "a" {
		t.Errorf("first ID = %q, want a", rules[0].ID)
	}
	if rules[1].ID == "a" || rules[1].ID == "" {
		t.Errorf("duplicate ID = %q, want a fresh one", rules[1].ID)
	}
}

func TestEncode(t *testing.T) {
	rules := []rule.Rule{
		{ID: "a", Trigger: "btw", Replacement: "by the way", ApplyOnPaste: true, ExcludeCodeBlocks: true},
		{ID: "b", Trigger: `say "hi"`, Replacement: "", ApplyOnPaste: false, ExcludeCodeBlocks: false},
	}

	data, err := Encode(rules)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(data), `"matchStr": "btw"`) {
		t.Errorf("encoded document missing trigger:\n%s", data)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != len(rules) {
		t.Fatalf("len = %d, want %d", len(got), len(rules))
	}
	for i := range rules {
		if got[i] != rules[i] {
			t.Errorf("rule %d = %+v, want %+v", i, got[i], rules[i])
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	rules, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("len(rules) = %d, want 0", len(rules))
	}
}
