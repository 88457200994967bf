package engine

import (
	"errors"
	"sync"
	"testing"
)

func pt(line, col int) Point {
	return Point{Line: line, Column: col}
}

func TestNewWithContent(t *testing.T) {
	e := New(WithContent("a\nb"))
	if e.Text() != "a\nb" {
		t.Errorf("Text() = %q", e.Text())
	}
	if e.LineCount() != 2 {
		t.Errorf("LineCount() = %d", e.LineCount())
	}
	if e.Cursor() != pt(0, 0) {
		t.Errorf("Cursor() = %s", e.Cursor())
	}
}

func TestInsertTextMovesCursor(t *testing.T) {
	e := New()
	for _, r := range "btw" {
		if err := e.InsertText(string(r)); err != nil {
			t.Fatal(err)
		}
	}
	if e.Text() != "btw" || e.Cursor() != pt(0, 3) {
		t.Errorf("Text() = %q Cursor() = %s", e.Text(), e.Cursor())
	}

	if err := e.InsertText("\n"); err != nil {
		t.Fatal(err)
	}
	if e.Cursor() != pt(1, 0) || e.Line(1) != "" {
		t.Errorf("after newline Cursor() = %s lines = %q", e.Cursor(), e.Lines())
	}
}

func TestBackspace(t *testing.T) {
	e := New(WithContent("ab\ncd"))
	e.SetCursor(pt(1, 0))

	if err := e.Backspace(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "abcd" || e.Cursor() != pt(0, 2) {
		t.Errorf("Text() = %q Cursor() = %s", e.Text(), e.Cursor())
	}

	e.SetCursor(pt(0, 0))
	if err := e.Backspace(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "abcd" {
		t.Error("backspace at buffer start changed text")
	}
}

func TestDeleteForward(t *testing.T) {
	e := New(WithContent("ab\ncd"))
	e.SetCursor(pt(0, 2))

	if err := e.DeleteForward(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "abcd" || e.Cursor() != pt(0, 2) {
		t.Errorf("Text() = %q Cursor() = %s", e.Text(), e.Cursor())
	}
}

func TestReplaceRangeCursorMapping(t *testing.T) {
	tests := []struct {
		name   string
		cursor Point
		from   Point
		to     Point
		text   string
		want   Point
	}{
		{"cursor at range end", pt(0, 7), pt(0, 4), pt(0, 7), "by the way", pt(0, 14)},
		{"cursor before range", pt(0, 1), pt(0, 4), pt(0, 7), "by the way", pt(0, 1)},
		{"cursor inside range", pt(0, 5), pt(0, 4), pt(0, 7), "X", pt(0, 5)},
		{"cursor after range same line", pt(0, 8), pt(0, 4), pt(0, 7), "", pt(0, 5)},
		{"cursor on later line", pt(1, 2), pt(0, 4), pt(0, 7), "a\nb", pt(2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithContent("say btw now\nnext"))
			e.SetCursor(tt.cursor)
			if err := e.ReplaceRange(tt.from, tt.to, tt.text); err != nil {
				t.Fatalf("ReplaceRange() error = %v", err)
			}
			if got := e.Cursor(); got != tt.want {
				t.Errorf("Cursor() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReplaceRangeIsOneUndoUnit(t *testing.T) {
	e := New()
	_ = e.InsertText("btw")
	before := e.UndoCount()

	if err := e.ReplaceRange(pt(0, 0), pt(0, 3), "by the way"); err != nil {
		t.Fatal(err)
	}
	if e.UndoCount() != before+1 {
		t.Errorf("UndoCount() = %d, want %d", e.UndoCount(), before+1)
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "btw" || e.Cursor() != pt(0, 3) {
		t.Errorf("after undo Text() = %q Cursor() = %s", e.Text(), e.Cursor())
	}

	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if e.Text() != "by the way" || e.Cursor() != pt(0, 10) {
		t.Errorf("after redo Text() = %q Cursor() = %s", e.Text(), e.Cursor())
	}
}

func TestReplaceRangeInvalid(t *testing.T) {
	e := New(WithContent("abc"))
	err := e.ReplaceRange(pt(0, 2), pt(0, 9), "x")
	if !errors.Is(err, ErrPointOutOfRange) {
		t.Errorf("ReplaceRange() error = %v, want ErrPointOutOfRange", err)
	}
	if e.CanUndo() {
		t.Error("failed edit recorded in history")
	}
}

func TestReadOnly(t *testing.T) {
	e := New(WithContent("abc"), WithReadOnly())
	if err := e.InsertText("x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("InsertText() error = %v", err)
	}
	if err := e.ReplaceRange(pt(0, 0), pt(0, 1), "x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("ReplaceRange() error = %v", err)
	}
}

func TestUndoEmpty(t *testing.T) {
	e := New()
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v", err)
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v", err)
	}
}

func TestCursorMotion(t *testing.T) {
	e := New(WithContent("abc\nd\nefgh"))
	e.SetCursor(pt(0, 3))

	e.MoveRight()
	if e.Cursor() != pt(1, 0) {
		t.Errorf("MoveRight wrap = %s", e.Cursor())
	}
	e.MoveLeft()
	if e.Cursor() != pt(0, 3) {
		t.Errorf("MoveLeft wrap = %s", e.Cursor())
	}
	e.MoveDown()
	if e.Cursor() != pt(1, 1) {
		t.Errorf("MoveDown clamp = %s", e.Cursor())
	}
	e.MoveDown()
	e.MoveLineEnd()
	if e.Cursor() != pt(2, 4) {
		t.Errorf("MoveLineEnd = %s", e.Cursor())
	}
	e.MoveLineStart()
	e.MoveUp()
	if e.Cursor() != pt(1, 0) {
		t.Errorf("MoveUp = %s", e.Cursor())
	}
	e.SetCursor(pt(10, 10))
	if e.Cursor() != pt(2, 4) {
		t.Errorf("SetCursor clamp = %s", e.Cursor())
	}
}

func TestConcurrentAccess(t *testing.T) {
	e := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = e.InsertText("x")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = e.Text()
				_ = e.Cursor()
			}
		}()
	}
	wg.Wait()

	if got := len(e.Text()); got != 400 {
		t.Errorf("len(Text()) = %d, want 400", got)
	}
}

func TestSnapshotRevision(t *testing.T) {
	e := New(WithContent("a"))
	lines, rev := e.Snapshot()
	if len(lines) != 1 || lines[0] != "a" {
		t.Errorf("Snapshot() lines = %q", lines)
	}
	_ = e.InsertText("b")
	if _, next := e.Snapshot(); next == rev {
		t.Error("revision unchanged after edit")
	}
}
