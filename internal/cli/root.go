// Package cli implements the autoreplace command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/autoreplace/internal/config"
	"github.com/dshills/autoreplace/internal/config/settings"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	RulesPath string
	LogLevel  string
	Format    string // "json" | "text"

	// Settings are the file and environment defaults, loaded before any
	// command runs. Flags given on the command line take precedence.
	Settings settings.Settings
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "autoreplace",
		Short:   "Replace trigger words as you type",
		Long:    "A terminal editor that replaces configured trigger words as soon as they are typed, plus commands to manage the rules.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.applySettings(cmd)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.RulesPath, "rules", "", "rules file (default $XDG_CONFIG_HOME/autoreplace/rules.json)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewRulesCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// applySettings loads settings and fills in every global flag the user did
// not give.
func (opts *RootOptions) applySettings(cmd *cobra.Command) error {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = ""
	}
	s, err := settings.Load(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot load settings", err)
	}
	opts.Settings = s

	if !cmd.Flags().Changed("rules") && s.Rules != "" {
		opts.RulesPath = s.Rules
	}
	if !cmd.Flags().Changed("log-level") && s.LogLevel != "" {
		opts.LogLevel = s.LogLevel
	}
	return nil
}
