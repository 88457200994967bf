package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/autoreplace/internal/input/key"
	"github.com/dshills/autoreplace/internal/replace"
	"github.com/dshills/autoreplace/internal/rule"
)

// Logger is the logging surface the plugin needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}

// OutcomeFunc is told the outcome of every key-up in an attached editor.
type OutcomeFunc func(editorID string, out replace.Outcome)

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the plugin logger. Engines log through it as well.
func WithLogger(l Logger) Option {
	return func(p *Plugin) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithOutcomeHook registers fn to observe replacement outcomes.
func WithOutcomeHook(fn OutcomeFunc) Option {
	return func(p *Plugin) {
		p.onOutcome = fn
	}
}

// attachment is what the plugin registered on one editor.
type attachment struct {
	editor    Editor
	engine    *replace.Engine
	listeners []ListenerID
}

// Plugin wires replacement engines to editors.
type Plugin struct {
	mu sync.Mutex

	store *rule.Store
	state State

	attached map[string]*attachment

	logger    Logger
	onOutcome OutcomeFunc
}

// New creates an unloaded plugin reading rules from store.
func New(store *rule.Store, opts ...Option) *Plugin {
	p := &Plugin{
		store:    store,
		state:    StateUnloaded,
		attached: make(map[string]*attachment),
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Store returns the rule store.
func (p *Plugin) Store() *rule.Store {
	return p.store
}

// State returns the current lifecycle state.
func (p *Plugin) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Load activates the plugin.
func (p *Plugin) Load() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateUnloaded {
		return ErrAlreadyLoaded
	}
	p.state = StateActive
	p.logger.Info("plugin: loaded with %d rules", p.store.Len())
	return nil
}

// Unload detaches every editor and deactivates the plugin.
func (p *Plugin) Unload() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateActive {
		return ErrNotLoaded
	}
	p.state = StateUnloading

	for _, id := range p.editorIDsLocked() {
		p.detachLocked(id)
	}

	p.state = StateUnloaded
	p.logger.Info("plugin: unloaded")
	return nil
}

// Attach registers the key listeners on ed.
func (p *Plugin) Attach(ed Editor) error {
	if ed == nil {
		return ErrNilEditor
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.IsUsable() {
		return ErrNotLoaded
	}
	id := ed.ID()
	if _, ok := p.attached[id]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyAttached, id)
	}

	eng := replace.New(p.store, replace.WithLogger(p.logger))
	a := &attachment{editor: ed, engine: eng}

	a.listeners = append(a.listeners,
		ed.AddKeyListener(key.PhaseDown, func(ev key.Event) {
			eng.KeyDown(ed, ev)
		}),
		ed.AddKeyListener(key.PhaseUp, func(ev key.Event) {
			out := eng.KeyUp(ed, ev)
			if p.onOutcome != nil {
				p.onOutcome(id, out)
			}
		}),
	)

	p.attached[id] = a
	p.logger.Info("plugin: attached to editor %s", id)
	return nil
}

// Detach removes the listeners registered on the editor with the given id.
func (p *Plugin) Detach(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.attached[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotAttached, id)
	}
	p.detachLocked(id)
	return nil
}

func (p *Plugin) detachLocked(id string) {
	a := p.attached[id]
	for _, lid := range a.listeners {
		if !a.editor.RemoveKeyListener(lid) {
			p.logger.Warn("plugin: listener %d already gone from editor %s", lid, id)
		}
	}
	delete(p.attached, id)
	p.logger.Info("plugin: detached from editor %s", id)
}

// Editors returns the ids of attached editors, sorted.
func (p *Plugin) Editors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editorIDsLocked()
}

func (p *Plugin) editorIDsLocked() []string {
	ids := make([]string, 0, len(p.attached))
	for id := range p.attached {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Stats returns the engine counters for an attached editor.
func (p *Plugin) Stats(id string) (replace.Stats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	a, ok := p.attached[id]
	if !ok {
		return replace.Stats{}, false
	}
	return a.engine.Stats(), true
}
