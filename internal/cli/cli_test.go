package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/autoreplace/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	buf := &bytes.Buffer{}
	cmd := NewRootCommand("test")
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func rulesFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "rules.json")
}

func addRule(t *testing.T, path, trigger, replacement string) string {
	t.Helper()
	args := []string{"rules", "add", "-t", trigger, "-r", replacement}
	if path != "" {
		args = append([]string{"--rules", path}, args...)
	}
	out, err := execute(t, args...)
	require.NoError(t, err)
	return strings.TrimSpace(out)
}

func TestRulesAddAndList(t *testing.T) {
	path := rulesFile(t)
	id := addRule(t, path, "btw", "by the way")
	assert.NotEmpty(t, id)

	out, err := execute(t, "--rules", path, "rules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TRIGGER")
	assert.Contains(t, out, id)
	assert.Contains(t, out, `"btw"`)
	assert.Contains(t, out, `"by the way"`)

	rules, err := config.Read(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, id, rules[0].ID)
	assert.True(t, rules[0].ExcludeCodeBlocks)
	assert.True(t, rules[0].ApplyOnPaste)
}

func TestRulesListJSON(t *testing.T) {
	path := rulesFile(t)
	addRule(t, path, "ty", "thank you")
	addRule(t, path, "omw", "on my way")

	out, err := execute(t, "--rules", path, "--format", "json", "rules", "list")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   []ruleView `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "ty", resp.Data[0].Trigger)
	assert.Equal(t, "omw", resp.Data[1].Trigger)
}

func TestRulesListEmpty(t *testing.T) {
	out, err := execute(t, "--rules", rulesFile(t), "rules", "list")
	require.NoError(t, err)
	assert.Equal(t, "no rules\n", out)
}

func TestRulesAddFlags(t *testing.T) {
	path := rulesFile(t)
	_, err := execute(t, "--rules", path, "rules", "add", "-t", "fn", "--allow-code", "--no-paste")
	require.NoError(t, err)

	rules, err := config.Read(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "fn", rules[0].Trigger)
	assert.Equal(t, "", rules[0].Replacement)
	assert.False(t, rules[0].ExcludeCodeBlocks)
	assert.False(t, rules[0].ApplyOnPaste)
}

func TestRulesSet(t *testing.T) {
	path := rulesFile(t)
	id := addRule(t, path, "btw", "by the way")

	_, err := execute(t, "--rules", path, "rules", "set", id, "replacement", "BY THE WAY")
	require.NoError(t, err)
	_, err = execute(t, "--rules", path, "rules", "set", id, "exclude-code", "false")
	require.NoError(t, err)

	rules, err := config.Read(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "BY THE WAY", rules[0].Replacement)
	assert.False(t, rules[0].ExcludeCodeBlocks)
}

func TestRulesSetErrors(t *testing.T) {
	path := rulesFile(t)
	id := addRule(t, path, "btw", "by the way")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown id", []string{"set", "nope", "trigger", "x"}},
		{"unknown field", []string{"set", id, "colour", "x"}},
		{"bad bool", []string{"set", id, "apply-on-paste", "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--rules", path, "rules"}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestRulesRemove(t *testing.T) {
	path := rulesFile(t)
	id := addRule(t, path, "btw", "by the way")
	addRule(t, path, "omw", "on my way")

	out, err := execute(t, "--rules", path, "rules", "rm", id, "not-an-id")
	require.NoError(t, err)
	assert.Equal(t, "removed 1\n", out)

	rules, err := config.Read(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "omw", rules[0].Trigger)
}

func TestRulesCheck(t *testing.T) {
	path := rulesFile(t)
	addRule(t, path, "ty", "thank you")

	out, err := execute(t, "--rules", path, "rules", "check")
	require.NoError(t, err)
	assert.Equal(t, "1 rules ok\n", out)

	addRule(t, path, "ty", "typescript")
	_, err = execute(t, "--rules", path, "rules", "add")
	require.NoError(t, err)

	out, err = execute(t, "--rules", path, "rules", "check")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "rule 2")
	assert.Contains(t, out, "shadowed")
	assert.Contains(t, out, "rule 3")
	assert.Contains(t, out, "trigger is empty")
}

func TestRulesExportImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	addRule(t, path, "btw", "by the way")
	addRule(t, path, "omw", "on my way")

	out, err := execute(t, "--rules", path, "rules", "export", "--as", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[[rule]]")
	assert.Contains(t, out, "by the way")

	exported := filepath.Join(dir, "rules.yaml")
	_, err = execute(t, "--rules", path, "rules", "export", exported)
	require.NoError(t, err)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(data), "trigger: omw")

	// Importing into the same store appends copies with fresh ids.
	out, err = execute(t, "--rules", path, "rules", "import", exported)
	require.NoError(t, err)
	assert.Equal(t, "imported 2 rules, 4 total\n", out)

	rules, err := config.Read(path)
	require.NoError(t, err)
	require.Len(t, rules, 4)
	ids := map[string]bool{}
	for _, r := range rules {
		ids[r.ID] = true
	}
	assert.Len(t, ids, 4)

	other := filepath.Join(dir, "other.json")
	_, err = execute(t, "--rules", other, "rules", "import", "--replace", exported)
	require.NoError(t, err)
	rules, err = config.Read(other)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "btw", rules[0].Trigger)
}

func TestRulesImportUnknownFormat(t *testing.T) {
	_, err := execute(t, "--rules", rulesFile(t), "rules", "import", "rules.ini")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRulesRefuseBrokenFile(t *testing.T) {
	path := rulesFile(t)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := execute(t, "--rules", path, "rules", "add", "-t", "x")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

func TestInvalidFormatFlag(t *testing.T) {
	_, err := execute(t, "--format", "xml", "rules", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestEditFailsBeforeTouchingTerminal(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t,
		"--rules", filepath.Join(dir, "rules.json"),
		"edit", "--no-watch", "--script", filepath.Join(dir, "missing.lua"),
	)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "script")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "x", nil)))
}

func TestSettingsProvideDefaults(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "from-settings.json")
	t.Setenv("AUTOREPLACE_RULES", rulesPath)

	addRule(t, "", "btw", "by the way")

	rules, err := config.Read(rulesPath)
	require.NoError(t, err)
	require.Len(t, rules, 1)

	// An explicit flag still wins.
	other := filepath.Join(dir, "flag.json")
	addRule(t, other, "omw", "on my way")
	rules, err = config.Read(rulesPath)
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestBrokenSettingsFile(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, "autoreplace")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.toml"), []byte("watch = ="), 0o644))

	buf := &bytes.Buffer{}
	cmd := NewRootCommand("test")
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"rules", "list"})
	t.Setenv("XDG_CONFIG_HOME", home)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
