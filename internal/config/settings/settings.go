// Package settings loads the editor's persistent defaults.
//
// Settings come in three layers, later layers winning:
//
//  1. built-in defaults
//  2. settings.toml in the config directory
//  3. AUTOREPLACE_* environment variables
//
// Command line flags are applied on top by the caller.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/autoreplace/internal/config"
)

// FileName is the settings file inside the config directory.
const FileName = "settings.toml"

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "AUTOREPLACE_"

// Settings are the editor defaults. Zero values mean "not set" so layers
// can be merged.
type Settings struct {
	Rules    string `toml:"rules,omitempty"`
	LogLevel string `toml:"log_level,omitempty"`
	LogFile  string `toml:"log_file,omitempty"`
	Script   string `toml:"script,omitempty"`
	Watch    *bool  `toml:"watch,omitempty"`
}

// Default returns the built-in settings.
func Default() Settings {
	watch := true
	return Settings{
		LogLevel: "info",
		Watch:    &watch,
	}
}

// WatchEnabled reports the watch setting, defaulting to true.
func (s Settings) WatchEnabled() bool {
	return s.Watch == nil || *s.Watch
}

// Merge returns s with every field set in over replacing its own.
func (s Settings) Merge(over Settings) Settings {
	if over.Rules != "" {
		s.Rules = over.Rules
	}
	if over.LogLevel != "" {
		s.LogLevel = over.LogLevel
	}
	if over.LogFile != "" {
		s.LogFile = over.LogFile
	}
	if over.Script != "" {
		s.Script = over.Script
	}
	if over.Watch != nil {
		w := *over.Watch
		s.Watch = &w
	}
	return s
}

// LoadFile reads a settings file. A missing file yields empty settings.
// Unknown keys are rejected so typos do not go unnoticed.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	var s Settings
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		pe := &config.ParseError{Path: path, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return Settings{}, pe
	}

	s.Rules = expandPath(s.Rules)
	s.LogFile = expandPath(s.LogFile)
	s.Script = expandPath(s.Script)
	return s, nil
}

// FromEnv reads AUTOREPLACE_RULES, AUTOREPLACE_LOG_LEVEL,
// AUTOREPLACE_LOG_FILE, AUTOREPLACE_SCRIPT and AUTOREPLACE_WATCH through
// lookup. Empty values count as unset.
func FromEnv(lookup func(string) (string, bool)) (Settings, error) {
	get := func(name string) string {
		v, _ := lookup(EnvPrefix + name)
		return strings.TrimSpace(v)
	}

	s := Settings{
		Rules:    expandPath(get("RULES")),
		LogLevel: get("LOG_LEVEL"),
		LogFile:  expandPath(get("LOG_FILE")),
		Script:   expandPath(get("SCRIPT")),
	}
	if v := get("WATCH"); v != "" {
		b, ok := parseBool(v)
		if !ok {
			return Settings{}, fmt.Errorf("%sWATCH: invalid boolean %q", EnvPrefix, v)
		}
		s.Watch = &b
	}
	return s, nil
}

// Load layers the defaults, dir/settings.toml and the environment.
// An empty dir skips the file layer.
func Load(dir string) (Settings, error) {
	s := Default()

	if dir != "" {
		file, err := LoadFile(filepath.Join(dir, FileName))
		if err != nil {
			return s, err
		}
		s = s.Merge(file)
	}

	env, err := FromEnv(os.LookupEnv)
	if err != nil {
		return s, err
	}
	return s.Merge(env), nil
}

func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

// expandPath expands $VAR, ${VAR} and a leading ~/.
func expandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}
