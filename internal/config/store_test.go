package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/autoreplace/internal/rule"
)

func TestLoadMissingFile(t *testing.T) {
	store := Load(filepath.Join(t.TempDir(), "nope.json"))
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := Load(path)
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}

	_, err := Read(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Read() error = %v, want *ParseError", err)
	}
	if pe.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", pe.Path, path)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "rules.json")

	store := rule.NewStore()
	r := store.AddRule()
	if err := store.SetTrigger(r.ID, "btw"); err != nil {
		t.Fatal(err)
	}
	if err := store.SetReplacement(r.ID, "by the way"); err != nil {
		t.Fatal(err)
	}
	store.AddRule()

	if err := Save(path, store); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := Load(path)
	if loaded.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", loaded.Len())
	}
	got, ok := loaded.Get(r.ID)
	if !ok {
		t.Fatalf("rule %s not loaded", r.ID)
	}
	if got.Trigger != "btw" || got.Replacement != "by the way" {
		t.Errorf("loaded rule = %+v", got)
	}
	if found, ok := loaded.FindByTrigger("btw"); !ok || found.ID != r.ID {
		t.Errorf("FindByTrigger() = %+v, %v", found, ok)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")

	if err := Save(path, rule.NewStore(rule.New())); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir contents = %v, want only rules.json", names)
	}
}

func TestSaveError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	err := Save(filepath.Join(blocker, "rules.json"), rule.NewStore())
	if err == nil {
		t.Error("Save() should fail when the parent is a file")
	}
}

func TestDefaultRulesPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")

	path := DefaultRulesPath()
	if filepath.Base(path) != RulesFileName {
		t.Errorf("DefaultRulesPath() = %q, want %s file", path, RulesFileName)
	}
	if filepath.Base(filepath.Dir(path)) != AppDirName {
		t.Errorf("DefaultRulesPath() = %q, want inside %s", path, AppDirName)
	}
}
