package config

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/autoreplace/internal/rule"
)

// Persisted field names.
const (
	keyEntries           = "entries"
	keyID                = "id"
	keyTrigger           = "matchStr"
	keyReplacement       = "replacement"
	keyApplyOnPaste      = "applyOnPaste"
	keyExcludeCodeBlocks = "excludeCodeBlocks"
)

var errInvalidJSON = errors.New("invalid JSON")

// Decode parses a rules document. Only a document that is not JSON at all
// is an error. A missing or non-array "entries" yields no rules; entries
// that are not objects are skipped; a field with the wrong type takes its
// default. Missing or duplicate identifiers are replaced with fresh ones.
func Decode(data []byte) ([]rule.Rule, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: "<data>", Message: "document is not valid JSON", Err: errInvalidJSON}
	}

	entries := gjson.GetBytes(data, keyEntries)
	if !entries.IsArray() {
		return nil, nil
	}

	var rules []rule.Rule
	seen := make(map[string]bool)
	entries.ForEach(func(_, entry gjson.Result) bool {
		if !entry.IsObject() {
			return true
		}
		r := decodeEntry(entry)
		if seen[r.ID] {
			r.ID = rule.NewID()
		}
		seen[r.ID] = true
		rules = append(rules, r)
		return true
	})
	return rules, nil
}

func decodeEntry(entry gjson.Result) rule.Rule {
	r := rule.New()

	if id := decodeID(entry.Get(keyID)); id != "" {
		r.ID = id
	}
	if v := entry.Get(keyTrigger); v.Type == gjson.String {
		r.Trigger = v.Str
	}
	if v := entry.Get(keyReplacement); v.Type == gjson.String {
		r.Replacement = v.Str
	}
	if v := entry.Get(keyApplyOnPaste); v.IsBool() {
		r.ApplyOnPaste = v.Bool()
	}
	if v := entry.Get(keyExcludeCodeBlocks); v.IsBool() {
		r.ExcludeCodeBlocks = v.Bool()
	}
	return r
}

// decodeID accepts a plain string or an object wrapping it in "value".
func decodeID(v gjson.Result) string {
	switch {
	case v.Type == gjson.String:
		return v.Str
	case v.IsObject():
		if inner := v.Get("value"); inner.Type == gjson.String {
			return inner.Str
		}
	}
	return ""
}

// Encode renders rules as an indented rules document.
func Encode(rules []rule.Rule) ([]byte, error) {
	data := []byte(`{"entries":[]}`)

	for i, r := range rules {
		entry, err := encodeEntry(r)
		if err != nil {
			return nil, fmt.Errorf("encoding rule %d: %w", i, err)
		}
		data, err = sjson.SetRawBytes(data, keyEntries+".-1", entry)
		if err != nil {
			return nil, fmt.Errorf("encoding rule %d: %w", i, err)
		}
	}

	return pretty.Pretty(data), nil
}

func encodeEntry(r rule.Rule) ([]byte, error) {
	entry := []byte(`{}`)
	fields := []struct {
		key   string
		value any
	}{
		{keyID, r.ID},
		{keyTrigger, r.Trigger},
		{keyReplacement, r.Replacement},
		{keyApplyOnPaste, r.ApplyOnPaste},
		{keyExcludeCodeBlocks, r.ExcludeCodeBlocks},
	}

	var err error
	for _, f := range fields {
		entry, err = sjson.SetBytes(entry, f.key, f.value)
		if err != nil {
			return nil, err
		}
	}
	return entry, nil
}
