package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/dshills/autoreplace/internal/rule"
)

// Format is an import/export file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// transferDoc is the shape of TOML and YAML rule files:
//
//	[[rule]]
//	trigger = "btw"
//	replacement = "by the way"
//	exclude_code = false
type transferDoc struct {
	Rules []transferRule `toml:"rule" yaml:"rules"`
}

type transferRule struct {
	ID           string `toml:"id,omitempty" yaml:"id,omitempty"`
	Trigger      string `toml:"trigger" yaml:"trigger"`
	Replacement  string `toml:"replacement" yaml:"replacement"`
	ExcludeCode  *bool  `toml:"exclude_code,omitempty" yaml:"exclude_code,omitempty"`
	ApplyOnPaste *bool  `toml:"apply_on_paste,omitempty" yaml:"apply_on_paste,omitempty"`
}

// Export writes rules to w in the given format.
func Export(w io.Writer, rules []rule.Rule, format Format) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatJSON:
		data, err = Encode(rules)
	case FormatTOML:
		data, err = toml.Marshal(toTransfer(rules))
	case FormatYAML:
		data, err = yaml.Marshal(toTransfer(rules))
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}

	_, err = w.Write(data)
	return err
}

// Import reads rules from r. Rules without an identifier get a fresh one.
// Triggers and replacements are normalized to NFC.
func Import(r io.Reader, format Format) ([]rule.Rule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}

	var rules []rule.Rule
	switch format {
	case FormatJSON:
		rules, err = Decode(data)
		if err != nil {
			return nil, err
		}
	case FormatTOML:
		var doc transferDoc
		if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
			return nil, tomlParseError(err)
		}
		rules = fromTransfer(doc)
	case FormatYAML:
		var doc transferDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ParseError{Path: "<yaml>", Message: err.Error(), Err: err}
		}
		rules = fromTransfer(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	for i := range rules {
		rules[i].Trigger = norm.NFC.String(rules[i].Trigger)
		rules[i].Replacement = norm.NFC.String(rules[i].Replacement)
	}
	return rules, nil
}

func tomlParseError(err error) error {
	pe := &ParseError{Path: "<toml>", Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	return pe
}

func toTransfer(rules []rule.Rule) transferDoc {
	doc := transferDoc{Rules: make([]transferRule, 0, len(rules))}
	for _, r := range rules {
		exclude, paste := r.ExcludeCodeBlocks, r.ApplyOnPaste
		doc.Rules = append(doc.Rules, transferRule{
			ID:           r.ID,
			Trigger:      r.Trigger,
			Replacement:  r.Replacement,
			ExcludeCode:  &exclude,
			ApplyOnPaste: &paste,
		})
	}
	return doc
}

func fromTransfer(doc transferDoc) []rule.Rule {
	rules := make([]rule.Rule, 0, len(doc.Rules))
	for _, tr := range doc.Rules {
		r := rule.New()
		if tr.ID != "" {
			r.ID = tr.ID
		}
		r.Trigger = tr.Trigger
		r.Replacement = tr.Replacement
		if tr.ExcludeCode != nil {
			r.ExcludeCodeBlocks = *tr.ExcludeCode
		}
		if tr.ApplyOnPaste != nil {
			r.ApplyOnPaste = *tr.ApplyOnPaste
		}
		rules = append(rules, r)
	}
	return rules
}
