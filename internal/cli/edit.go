package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/autoreplace/internal/app"
	"github.com/dshills/autoreplace/internal/config/settings"
	"github.com/dshills/autoreplace/internal/replace"
	"github.com/dshills/autoreplace/internal/terminal"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	ScriptPath string
	LogFile    string
	NoWatch    bool
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{}

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open a file in the terminal editor",
		Long: `Open a file in the terminal editor with replacement active.

Ctrl+S saves, Ctrl+Q quits, Ctrl+Z and Ctrl+Y undo and redo.
The rules file is reloaded whenever it changes on disk.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			opts.applySettings(cmd, rootOpts.Settings)
			return runEdit(cmd.Context(), rootOpts, opts, path)
		},
	}

	cmd.Flags().StringVar(&opts.ScriptPath, "script", "", "Lua script that adds rules at startup")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file")
	cmd.Flags().BoolVar(&opts.NoWatch, "no-watch", false, "do not reload the rules file on change")

	return cmd
}

// applySettings fills in every edit flag the user did not give.
func (opts *EditOptions) applySettings(cmd *cobra.Command, s settings.Settings) {
	if !cmd.Flags().Changed("script") {
		opts.ScriptPath = s.Script
	}
	if !cmd.Flags().Changed("log-file") {
		opts.LogFile = s.LogFile
	}
	if !cmd.Flags().Changed("no-watch") {
		opts.NoWatch = !s.WatchEnabled()
	}
}

func runEdit(ctx context.Context, rootOpts *RootOptions, opts *EditOptions, path string) error {
	// The screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot open log file", err)
		}
		defer f.Close()
		logOut = f
	}

	application, err := app.New(app.Options{
		RulesPath:  rootOpts.RulesPath,
		LogLevel:   rootOpts.LogLevel,
		LogOutput:  logOut,
		ScriptPath: opts.ScriptPath,
		Watch:      !opts.NoWatch,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot start", err)
	}
	defer application.Shutdown()

	ed, err := application.OpenEditor(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open "+path, err)
	}
	defer application.CloseEditor(ed)

	screen, err := terminal.NewScreen()
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot open terminal", err)
	}
	ui := terminal.New(screen, ed)
	application.OnOutcome(func(_ string, out replace.Outcome) {
		if out.Fired() {
			ui.SetMessage(out.Rule.String())
		}
	})

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ui.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
