package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/autoreplace/internal/config"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func boolPtr(b bool) *bool { return &b }

func TestDefault(t *testing.T) {
	s := Default()
	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", s.LogLevel)
	}
	if !s.WatchEnabled() {
		t.Error("watch disabled by default")
	}
	if !(Settings{}).WatchEnabled() {
		t.Error("unset watch should count as enabled")
	}
}

func TestMerge(t *testing.T) {
	base := Settings{Rules: "a.json", LogLevel: "info", Watch: boolPtr(true)}
	got := base.Merge(Settings{LogLevel: "debug", Watch: boolPtr(false)})

	if got.Rules != "a.json" {
		t.Errorf("Rules = %q, want a.json", got.Rules)
	}
	if got.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", got.LogLevel)
	}
	if got.WatchEnabled() {
		t.Error("Watch = true, want false")
	}
	if !base.WatchEnabled() {
		t.Error("Merge modified the receiver")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	data := `
rules = "$AR_TEST_DIR/rules.json"
log_level = "debug"
watch = false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AR_TEST_DIR", dir)

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if want := filepath.Join(dir, "rules.json"); s.Rules != want {
		t.Errorf("Rules = %q, want %q", s.Rules, want)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", s.LogLevel)
	}
	if s.WatchEnabled() {
		t.Error("watch should be disabled")
	}
}

func TestLoadFileMissing(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s != (Settings{}) {
		t.Errorf("LoadFile() = %+v, want empty", s)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "log_level = \n"},
		{"unknown key", "colour = \"red\"\n"},
		{"wrong type", "watch = \"sometimes\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			var pe *config.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("LoadFile() error = %v, want *config.ParseError", err)
			}
			if pe.Path != path {
				t.Errorf("Path = %q, want %q", pe.Path, path)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	s, err := FromEnv(envMap(map[string]string{
		"AUTOREPLACE_LOG_LEVEL": "warn",
		"AUTOREPLACE_WATCH":     "off",
		"AUTOREPLACE_SCRIPT":    "",
		"OTHER":                 "x",
	}))
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if s.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", s.LogLevel)
	}
	if s.Watch == nil || *s.Watch {
		t.Errorf("Watch = %v, want false", s.Watch)
	}
	if s.Script != "" {
		t.Errorf("Script = %q, want unset", s.Script)
	}
}

func TestFromEnvBadBool(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{"AUTOREPLACE_WATCH": "maybe"}))
	if err == nil {
		t.Error("FromEnv() accepted an invalid boolean")
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	data := "log_level = \"debug\"\nscript = \"/etc/rules.lua\"\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AUTOREPLACE_LOG_LEVEL", "error")

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error (env beats file)", s.LogLevel)
	}
	if s.Script != "/etc/rules.lua" {
		t.Errorf("Script = %q, want file value", s.Script)
	}
	if !s.WatchEnabled() {
		t.Error("default watch lost")
	}
}
