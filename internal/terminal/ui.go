package terminal

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/autoreplace/internal/editor"
	"github.com/dshills/autoreplace/internal/input/key"
)

// Screen is the part of tcell.Screen the UI draws on.
type Screen interface {
	Init() error
	Fini()
	Size() (width, height int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	ShowCursor(x, y int)
	Show()
	Sync()
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
}

var (
	quitKey = key.MustParse("Ctrl+q")
	saveKey = key.MustParse("Ctrl+s")
)

var statusStyle = tcell.StyleDefault.Reverse(true)

// UI runs one editor full screen.
type UI struct {
	screen Screen
	ed     *editor.Editor
	top    int

	// confirmQuit is set after a first Ctrl+Q on a modified document.
	confirmQuit bool

	mu      sync.Mutex
	message string
}

// New creates a UI for ed drawing on screen.
func New(screen Screen, ed *editor.Editor) *UI {
	return &UI{screen: screen, ed: ed}
}

// NewScreen returns the terminal's tcell screen.
func NewScreen() (tcell.Screen, error) {
	return tcell.NewScreen()
}

// SetMessage shows msg in the status bar until the next key.
func (u *UI) SetMessage(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.message = msg
}

func (u *UI) takeMessage() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.message
}

// Run initializes the screen and processes events until the user quits,
// ctx is done, or the screen is finalized elsewhere.
func (u *UI) Run(ctx context.Context) error {
	if err := u.screen.Init(); err != nil {
		return err
	}
	defer u.screen.Fini()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		u.draw()
		switch ev := u.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
		case *tcell.EventKey:
			if u.handleKey(ev) {
				return nil
			}
		}
	}
}

// handleKey processes one key and reports whether to quit.
func (u *UI) handleKey(tev *tcell.EventKey) bool {
	ev, ok := KeyEvent(tev)
	if !ok {
		return false
	}
	u.SetMessage("")

	switch {
	case ev.Equals(quitKey):
		if u.ed.Modified() && !u.confirmQuit {
			u.confirmQuit = true
			u.SetMessage("unsaved changes, Ctrl+Q again to quit")
			return false
		}
		return true
	case ev.Equals(saveKey):
		if err := u.ed.Save(); err != nil {
			u.SetMessage(err.Error())
		} else {
			u.SetMessage("saved")
		}
	default:
		if err := u.ed.HandleKey(ev); err != nil {
			u.SetMessage(err.Error())
		}
	}
	u.confirmQuit = false
	return false
}

func (u *UI) draw() {
	width, height := u.screen.Size()
	u.screen.Clear()
	if height <= 0 {
		u.screen.Show()
		return
	}

	textHeight := height - 1
	cur := u.ed.CursorPosition()
	u.top = scrollTop(u.top, cur.Line, textHeight)

	lines := u.ed.Lines()
	for y := 0; y < textHeight && u.top+y < len(lines); y++ {
		u.drawLine(y, width, lines[u.top+y])
	}

	status := statusText(u.ed.Path(), u.ed.Modified(), cur.Line, cur.Column, u.takeMessage(), width)
	x := 0
	for _, c := range layout(status) {
		if x >= width {
			break
		}
		u.screen.SetContent(x, height-1, c.runes[0], c.runes[1:], statusStyle)
		x += c.width
	}
	for ; x < width; x++ {
		u.screen.SetContent(x, height-1, ' ', nil, statusStyle)
	}

	if cur.Line < len(lines) {
		u.screen.ShowCursor(screenColumn(lines[cur.Line], cur.Column), cur.Line-u.top)
	}
	u.screen.Show()
}

func (u *UI) drawLine(y, width int, line string) {
	for _, c := range layout(line) {
		if c.x >= width {
			return
		}
		if c.runes[0] == '\t' {
			for i := 0; i < c.width; i++ {
				u.screen.SetContent(c.x+i, y, ' ', nil, tcell.StyleDefault)
			}
			continue
		}
		if c.width == 0 {
			continue
		}
		u.screen.SetContent(c.x, y, c.runes[0], c.runes[1:], tcell.StyleDefault)
	}
}
