// Package app wires the rule store, the replacement plugin, the optional
// rule script and the rules-file watcher into one application, and hands
// out editors with replacement attached.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/dshills/autoreplace/internal/config"
	"github.com/dshills/autoreplace/internal/config/watcher"
	"github.com/dshills/autoreplace/internal/editor"
	"github.com/dshills/autoreplace/internal/plugin"
	"github.com/dshills/autoreplace/internal/plugin/lua"
	"github.com/dshills/autoreplace/internal/replace"
	"github.com/dshills/autoreplace/internal/rule"
)

// Options configures the application.
type Options struct {
	// RulesPath is the rules file. Defaults to config.DefaultRulesPath().
	RulesPath string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// ScriptPath is a Lua script run at startup against the rule store.
	ScriptPath string

	// ScriptOutput receives the script's print output. Discarded if nil.
	ScriptOutput io.Writer

	// Watch reloads the rules file when it changes on disk.
	Watch bool
}

// Application owns the rule store and everything that reads or mutates it.
type Application struct {
	mu sync.Mutex

	opts   Options
	logger *Logger

	store    *rule.Store
	plugin   *plugin.Plugin
	script   *lua.State
	reloader *watcher.Reloader

	onOutcome plugin.OutcomeFunc
	closed    bool
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.RulesPath == "" {
		opts.RulesPath = config.DefaultRulesPath()
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(opts.LogLevel)
	if opts.LogOutput != nil {
		cfg.Output = opts.LogOutput
	}

	app := &Application{
		opts:   opts,
		logger: NewLogger(cfg),
	}

	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Rules. A broken rules file is reported but not fatal.
	rules, err := config.Read(app.opts.RulesPath)
	if err != nil {
		app.logger.WithComponent("rules").Warn("%v; starting with no rules", err)
	}
	app.store = rule.NewStore(rules...)
	app.logger.WithComponent("rules").Debug("loaded %d rules from %s", len(rules), app.opts.RulesPath)

	// 2. Plugin
	app.plugin = plugin.New(app.store,
		plugin.WithLogger(app.logger.WithComponent("plugin")),
		plugin.WithOutcomeHook(app.observe),
	)
	if err := app.plugin.Load(); err != nil {
		return NewComponentError("plugin", "load", err)
	}

	// 3. Script
	if app.opts.ScriptPath != "" {
		state, err := lua.NewState(lua.WithOutput(app.opts.ScriptOutput))
		if err != nil {
			return NewComponentError("script", "init", err)
		}
		state.OpenRules(app.store)
		app.script = state
		if err := app.runScript(); err != nil {
			return err
		}
	}

	// 4. Watcher
	if app.opts.Watch {
		dir := filepath.Dir(app.opts.RulesPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewComponentError("watcher", "create "+dir, err)
		}
		r, err := watcher.NewReloader(app.opts.RulesPath, app.store, app.reloaded,
			watcher.WithLogger(app.logger.WithComponent("watcher")))
		if err != nil {
			return NewComponentError("watcher", "watch", err)
		}
		app.reloader = r
	}

	return nil
}

func (app *Application) runScript() error {
	if err := app.script.DoFile(app.opts.ScriptPath); err != nil {
		return NewComponentError("script", "run "+app.opts.ScriptPath, err)
	}
	app.logger.WithComponent("script").Info("ran %s, %d rules", app.opts.ScriptPath, app.store.Len())
	return nil
}

// reloaded runs after the watcher swapped the store's rules. Scripted rules
// are not persisted, so the script runs again on top of the new file.
func (app *Application) reloaded(count int, err error) {
	log := app.logger.WithComponent("watcher")
	if err != nil {
		log.Warn("reload failed, keeping %d rules: %v", app.store.Len(), err)
		return
	}
	log.Info("reloaded %d rules from %s", count, app.opts.RulesPath)

	if app.script != nil {
		if err := app.runScript(); err != nil {
			log.Warn("%v", err)
		}
	}
}

func (app *Application) observe(editorID string, out replace.Outcome) {
	app.mu.Lock()
	fn := app.onOutcome
	app.mu.Unlock()
	if fn != nil {
		fn(editorID, out)
	}
}

// OnOutcome registers fn to observe every key-up outcome in every editor.
func (app *Application) OnOutcome(fn plugin.OutcomeFunc) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.onOutcome = fn
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Store returns the rule store.
func (app *Application) Store() *rule.Store {
	return app.store
}

// Plugin returns the replacement plugin.
func (app *Application) Plugin() *plugin.Plugin {
	return app.plugin
}

// RulesPath returns the rules file in use.
func (app *Application) RulesPath() string {
	return app.opts.RulesPath
}

// OpenEditor opens path, or an empty scratch document when path is empty,
// and attaches replacement to it.
func (app *Application) OpenEditor(path string) (*editor.Editor, error) {
	app.mu.Lock()
	closed := app.closed
	app.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	var ed *editor.Editor
	if path == "" {
		ed = editor.New()
	} else {
		var err error
		if ed, err = editor.Open(path); err != nil {
			return nil, err
		}
	}

	if err := app.plugin.Attach(ed); err != nil {
		return nil, fmt.Errorf("attaching to %s: %w", ed.ID(), err)
	}
	return ed, nil
}

// CloseEditor logs the editor's replacement counts and detaches
// replacement from it.
func (app *Application) CloseEditor(ed *editor.Editor) error {
	if ed == nil {
		return ErrNilEditor
	}
	if s, ok := app.plugin.Stats(ed.ID()); ok {
		app.logger.WithComponent("plugin").Info("closing %s: %d keystrokes, %d replaced, %d suppressed, %d failed",
			ed.ID(), s.KeyUps, s.Replaced, s.Suppressed, s.Failed)
	}
	return app.plugin.Detach(ed.ID())
}

// Shutdown stops the watcher, unloads the plugin and closes the script
// state. It is safe to call more than once.
func (app *Application) Shutdown() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return nil
	}
	app.closed = true
	app.mu.Unlock()

	var result *multierror.Error
	if app.reloader != nil {
		events, errs := app.reloader.Stats()
		app.logger.WithComponent("watcher").Debug("stopping after %d events, %d errors", events, errs)
		if err := app.reloader.Close(); err != nil {
			result = multierror.Append(result, NewComponentError("watcher", "close", err))
		}
	}
	if app.plugin != nil && app.plugin.State() == plugin.StateActive {
		if err := app.plugin.Unload(); err != nil {
			result = multierror.Append(result, NewComponentError("plugin", "unload", err))
		}
	}
	if app.script != nil {
		if err := app.script.Close(); err != nil {
			result = multierror.Append(result, NewComponentError("script", "close", err))
		}
	}
	app.logger.Debug("shutdown complete")
	return result.ErrorOrNil()
}
