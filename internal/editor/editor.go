package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/autoreplace/internal/engine"
	"github.com/dshills/autoreplace/internal/engine/buffer"
	"github.com/dshills/autoreplace/internal/input/key"
	"github.com/dshills/autoreplace/internal/plugin"
	"github.com/dshills/autoreplace/internal/syntax"
)

// ErrNoPath is returned when saving an editor that has no file.
var ErrNoPath = errors.New("editor has no file path")

// Option configures an Editor.
type Option func(*Editor)

// WithID sets the editor identifier. A random one is used otherwise.
func WithID(id string) Option {
	return func(e *Editor) {
		e.id = id
	}
}

// WithText sets the initial document text.
func WithText(text string) Option {
	return func(e *Editor) {
		e.text = text
	}
}

// WithPath associates the editor with a file for Save.
func WithPath(path string) Option {
	return func(e *Editor) {
		e.path = path
	}
}

// WithCodeDetection toggles markdown code-region detection.
func WithCodeDetection(enabled bool) Option {
	return func(e *Editor) {
		e.tokOpts = append(e.tokOpts, syntax.WithCodeDetection(enabled))
	}
}

type listener struct {
	phase key.Phase
	fn    plugin.KeyListener
}

// Editor is a single document with a cursor.
type Editor struct {
	id   string
	path string
	text string

	eng     *engine.Engine
	tok     *syntax.Tokenizer
	tokOpts []syntax.Option

	mu        sync.Mutex
	nextID    plugin.ListenerID
	order     []plugin.ListenerID
	listeners map[plugin.ListenerID]listener

	savedRevision engine.RevisionID
}

// New creates an editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		listeners: make(map[plugin.ListenerID]listener),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id == "" {
		e.id = uuid.NewString()
	}

	e.eng = engine.New(engine.WithContent(e.text))
	e.tok = syntax.NewTokenizer(e.eng, e.tokOpts...)
	e.savedRevision = e.eng.Revision()
	return e
}

// Open creates an editor for the file at path. A missing file opens as an
// empty document that Save will create.
func Open(path string, opts ...Option) (*Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	opts = append([]Option{WithText(string(data)), WithPath(path)}, opts...)
	return New(opts...), nil
}

// ID returns the editor identifier.
func (e *Editor) ID() string {
	return e.id
}

// Path returns the file the editor saves to.
func (e *Editor) Path() string {
	return e.path
}

// Engine returns the underlying engine facade.
func (e *Editor) Engine() *engine.Engine {
	return e.eng
}

// Tokenizer returns the editor's tokenizer.
func (e *Editor) Tokenizer() *syntax.Tokenizer {
	return e.tok
}

// Text returns the document text.
func (e *Editor) Text() string {
	return e.eng.Text()
}

// Lines returns a copy of the document lines.
func (e *Editor) Lines() []string {
	return e.eng.Lines()
}

// Modified reports whether the document changed since it was opened or
// last saved.
func (e *Editor) Modified() bool {
	return e.eng.Revision() != e.savedRevision
}

// Save writes the document to its file.
func (e *Editor) Save() error {
	if e.path == "" {
		return ErrNoPath
	}
	rev := e.eng.Revision()
	if err := os.WriteFile(e.path, []byte(e.eng.Text()), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", e.path, err)
	}
	e.savedRevision = rev
	return nil
}

// CursorPosition returns the cursor.
func (e *Editor) CursorPosition() buffer.Point {
	return e.eng.Cursor()
}

// SetCursor moves the cursor, clamped into the document.
func (e *Editor) SetCursor(p buffer.Point) {
	e.eng.SetCursor(p)
}

// TokenAt returns the token at p.
func (e *Editor) TokenAt(p buffer.Point) (syntax.Token, bool) {
	return e.tok.TokenAt(p)
}

// LineTokens returns the tokens of a line.
func (e *Editor) LineTokens(line int) []syntax.Token {
	return e.tok.LineTokens(line)
}

// ReplaceRange replaces [from, to) with text as one undoable edit.
func (e *Editor) ReplaceRange(text string, from, to buffer.Point) error {
	return e.eng.ReplaceRange(from, to, text)
}

// AddKeyListener registers fn for phase. Listeners run in registration
// order.
func (e *Editor) AddKeyListener(phase key.Phase, fn plugin.KeyListener) plugin.ListenerID {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.listeners[id] = listener{phase: phase, fn: fn}
	e.order = append(e.order, id)
	return id
}

// RemoveKeyListener unregisters a listener.
func (e *Editor) RemoveKeyListener(id plugin.ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.listeners[id]; !ok {
		return false
	}
	delete(e.listeners, id)
	for i, lid := range e.order {
		if lid == id {
			e.order = append(e.order[:i:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

// ListenerCount returns the number of registered listeners.
func (e *Editor) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// HandleKey runs key-down listeners, applies the key and runs key-up
// listeners. Key-up listeners run even if applying the key failed.
func (e *Editor) HandleKey(ev key.Event) error {
	e.dispatch(key.PhaseDown, ev)
	err := e.apply(ev)
	e.dispatch(key.PhaseUp, ev)
	return err
}

func (e *Editor) dispatch(phase key.Phase, ev key.Event) {
	e.mu.Lock()
	fns := make([]plugin.KeyListener, 0, len(e.order))
	for _, id := range e.order {
		if l := e.listeners[id]; l.phase == phase {
			fns = append(fns, l.fn)
		}
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
