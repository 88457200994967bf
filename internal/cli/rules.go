package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/dshills/autoreplace/internal/config"
	"github.com/dshills/autoreplace/internal/rule"
)

// ruleView is the JSON form of a rule.
type ruleView struct {
	ID                string `json:"id"`
	Trigger           string `json:"trigger"`
	Replacement       string `json:"replacement"`
	ExcludeCodeBlocks bool   `json:"excludeCodeBlocks"`
	ApplyOnPaste      bool   `json:"applyOnPaste"`
}

func viewOf(r rule.Rule) ruleView {
	return ruleView{
		ID:                r.ID,
		Trigger:           r.Trigger,
		Replacement:       r.Replacement,
		ExcludeCodeBlocks: r.ExcludeCodeBlocks,
		ApplyOnPaste:      r.ApplyOnPaste,
	}
}

// rulesSession is one load-modify-save cycle on the rules file.
type rulesSession struct {
	path  string
	store *rule.Store
	out   *OutputFormatter
}

// openRules reads the rules file. Unlike the editor, the rules commands
// refuse to run on a file they cannot parse, so a save never clobbers it.
func openRules(opts *RootOptions, cmd *cobra.Command) (*rulesSession, error) {
	path := opts.RulesPath
	if path == "" {
		path = config.DefaultRulesPath()
	}
	rules, err := config.Read(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot read rules", err)
	}
	return &rulesSession{
		path:  path,
		store: rule.NewStore(rules...),
		out:   &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()},
	}, nil
}

func (s *rulesSession) save() error {
	if err := config.Save(s.path, s.store); err != nil {
		return WrapExitError(ExitCommandError, "cannot save rules", err)
	}
	return nil
}

// NewRulesCommand creates the rules command group.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage replacement rules",
		Long: `Manage replacement rules.

Rules are tried in order and the first rule whose trigger equals the
completed word wins. Every change is written to the rules file at once.`,
	}

	cmd.AddCommand(newRulesListCommand(rootOpts))
	cmd.AddCommand(newRulesAddCommand(rootOpts))
	cmd.AddCommand(newRulesSetCommand(rootOpts))
	cmd.AddCommand(newRulesRemoveCommand(rootOpts))
	cmd.AddCommand(newRulesCheckCommand(rootOpts))
	cmd.AddCommand(newRulesExportCommand(rootOpts))
	cmd.AddCommand(newRulesImportCommand(rootOpts))

	return cmd
}

func newRulesListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List rules in match order",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRules(rootOpts, cmd)
			if err != nil {
				return err
			}
			rules := s.store.All()

			if s.out.JSON() {
				views := make([]ruleView, 0, len(rules))
				for _, r := range rules {
					views = append(views, viewOf(r))
				}
				return s.out.Success(views, "")
			}
			if len(rules) == 0 {
				return s.out.Success(nil, "no rules")
			}
			return writeTable(s.out.Writer, rules)
		},
	}
}

func writeTable(w io.Writer, rules []rule.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTRIGGER\tREPLACEMENT\tEXCLUDE CODE\tON PASTE")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%q\t%q\t%s\t%s\n", r.ID, r.Trigger, r.Replacement,
			yesNo(r.ExcludeCodeBlocks), yesNo(r.ApplyOnPaste))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func newRulesAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		trigger     string
		replacement string
		allowCode   bool
		noPaste     bool
	)

	cmd := &cobra.Command{
		Use:          "add",
		Short:        "Append a rule",
		Long:         "Append a rule. Without flags the rule is empty and stays disabled until a trigger is set.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRules(rootOpts, cmd)
			if err != nil {
				return err
			}

			r := s.store.AddRule()
			if err := applyFields(s.store, r.ID, trigger, replacement, allowCode, noPaste); err != nil {
				return err
			}
			if err := s.save(); err != nil {
				return err
			}

			r, _ = s.store.Get(r.ID)
			return s.out.Success(viewOf(r), r.ID)
		},
	}

	cmd.Flags().StringVarP(&trigger, "trigger", "t", "", "word that triggers the rule")
	cmd.Flags().StringVarP(&replacement, "replacement", "r", "", "text inserted in place of the trigger")
	cmd.Flags().BoolVar(&allowCode, "allow-code", false, "also replace inside code blocks and inline code")
	cmd.Flags().BoolVar(&noPaste, "no-paste", false, "clear the apply-on-paste setting")

	return cmd
}

func applyFields(store *rule.Store, id, trigger, replacement string, allowCode, noPaste bool) error {
	var result *multierror.Error
	if trigger != "" {
		result = multierror.Append(result, store.SetTrigger(id, trigger))
	}
	if replacement != "" {
		result = multierror.Append(result, store.SetReplacement(id, replacement))
	}
	if allowCode {
		result = multierror.Append(result, store.SetExcludeCodeBlocks(id, false))
	}
	if noPaste {
		result = multierror.Append(result, store.SetApplyOnPaste(id, false))
	}
	return result.ErrorOrNil()
}

// Fields accepted by "rules set".
const (
	fieldTrigger     = "trigger"
	fieldReplacement = "replacement"
	fieldExcludeCode = "exclude-code"
	fieldOnPaste     = "apply-on-paste"
)

func newRulesSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <field> <value>",
		Short: "Change one field of a rule",
		Long: `Change one field of a rule.

Fields: trigger, replacement, exclude-code, apply-on-paste.
The last two take a boolean (true/false, 1/0).`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, field, value := args[0], args[1], args[2]

			s, err := openRules(rootOpts, cmd)
			if err != nil {
				return err
			}
			if err := setField(s.store, id, field, value); err != nil {
				if errors.Is(err, rule.ErrRuleNotFound) {
					return WrapExitError(ExitCommandError, id, err)
				}
				return WrapExitError(ExitCommandError, "invalid value", err)
			}
			if err := s.save(); err != nil {
				return err
			}

			r, _ := s.store.Get(id)
			return s.out.Success(viewOf(r), r.String())
		},
	}
}

func setField(store *rule.Store, id, field, value string) error {
	field = strings.ToLower(field)
	switch field {
	case fieldTrigger:
		return store.SetTrigger(id, value)
	case fieldReplacement:
		return store.SetReplacement(id, value)
	case fieldExcludeCode, fieldOnPaste:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if field == fieldExcludeCode {
			return store.SetExcludeCodeBlocks(id, b)
		}
		return store.SetApplyOnPaste(id, b)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
}

func newRulesRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "rm <id>...",
		Aliases:      []string{"remove"},
		Short:        "Remove rules by id",
		Long:         "Remove rules by id. Ids that do not exist are ignored.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRules(rootOpts, cmd)
			if err != nil {
				return err
			}

			removed := 0
			for _, id := range args {
				if s.store.RemoveRule(id) {
					removed++
				}
			}
			if removed > 0 {
				if err := s.save(); err != nil {
					return err
				}
			}
			return s.out.Success(map[string]int{"removed": removed}, fmt.Sprintf("removed %d", removed))
		},
	}
}

func newRulesCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "check",
		Short:        "Report rules that can never fire",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRules(rootOpts, cmd)
			if err != nil {
				return err
			}

			lintErr := rule.Lint(s.store.All())
			if lintErr == nil {
				return s.out.Success([]string{}, fmt.Sprintf("%d rules ok", s.store.Len()))
			}

			var findings []string
			var merr *multierror.Error
			if errors.As(lintErr, &merr) {
				for _, e := range merr.Errors {
					findings = append(findings, e.Error())
				}
			}
			return s.out.Failure(findings, strings.Join(findings, "\n"),
				WrapExitError(ExitFailure, fmt.Sprintf("%d problems", len(findings)), nil))
		},
	}
}

func newRulesExportCommand(rootOpts *RootOptions) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write rules as TOML, YAML or JSON",
		Long: `Write rules as TOML, YAML or JSON.

The format comes from --as, else from the file extension, else JSON.
Without a file the rules go to standard output.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openRules(rootOpts, cmd)
			if err != nil {
				return err
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			format, err := transferFormat(as, path)
			if err != nil {
				return err
			}

			if path == "" {
				return config.Export(cmd.OutOrStdout(), s.store.All(), format)
			}

			f, err := os.Create(path)
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot create export file", err)
			}
			if err := config.Export(f, s.store.All(), format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			return s.out.Success(map[string]any{"path": path, "count": s.store.Len()},
				fmt.Sprintf("exported %d rules to %s", s.store.Len(), path))
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "format (toml|yaml|json)")
	return cmd
}

func newRulesImportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		as      string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add rules from a TOML, YAML or JSON file",
		Long: `Add rules from a TOML, YAML or JSON file.

Imported rules are appended after the existing ones unless --replace is
given. Imported rules keep their ids when they have one that is not in use.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := transferFormat(as, path)
			if err != nil {
				return err
			}

			s, err := openRules(rootOpts, cmd)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot open import file", err)
			}
			defer f.Close()

			rules, err := config.Import(f, format)
			if err != nil {
				return WrapExitError(ExitCommandError, "cannot import "+path, err)
			}

			if replace {
				s.store.Replace(nil)
			}
			for _, r := range rules {
				if _, taken := s.store.Get(r.ID); taken {
					r.ID = rule.NewID()
				}
				s.store.Append(r)
			}
			if err := s.save(); err != nil {
				return err
			}
			return s.out.Success(map[string]int{"imported": len(rules), "total": s.store.Len()},
				fmt.Sprintf("imported %d rules, %d total", len(rules), s.store.Len()))
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "format (toml|yaml|json)")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace all existing rules")
	return cmd
}

func transferFormat(as, path string) (config.Format, error) {
	var (
		format config.Format
		err    error
	)
	switch {
	case as != "":
		format, err = config.ParseFormat(as)
	case path != "":
		format, err = config.FormatFromPath(path)
	default:
		format = config.FormatJSON
	}
	if err != nil {
		return "", WrapExitError(ExitCommandError, "unknown format", err)
	}
	return format, nil
}
