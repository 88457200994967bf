package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/autoreplace/internal/rule"
)

// RulesFileName is the name of the rules file inside the config directory.
const RulesFileName = "rules.json"

// AppDirName is the application's directory under the user config directory.
const AppDirName = "autoreplace"

// DefaultRulesPath returns the default rules file location,
// $XDG_CONFIG_HOME/autoreplace/rules.json or the platform equivalent.
// It falls back to the working directory when no config directory exists.
func DefaultRulesPath() string {
	dir, err := ConfigDir()
	if err != nil {
		return RulesFileName
	}
	return filepath.Join(dir, RulesFileName)
}

// ConfigDir returns the application's config directory.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConfigDir, err)
	}
	return filepath.Join(base, AppDirName), nil
}

// Read reads and decodes the rules file at path. A missing file is not an
// error and yields no rules.
func Read(path string) ([]rule.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}

	rules, err := Decode(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return rules, nil
}

// Load returns a store holding the rules at path. It never fails: any
// problem reading or parsing the file yields an empty store.
func Load(path string) *rule.Store {
	rules, err := Read(path)
	if err != nil {
		return rule.NewStore()
	}
	return rule.NewStore(rules...)
}

// Save writes every rule in store to path, creating parent directories.
// The file is replaced atomically.
func Save(path string, store *rule.Store) error {
	data, err := Encode(store.All())
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing rules file %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing rules file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing rules file %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing rules file %s: %w", path, err)
	}
	return nil
}
