package terminal

import (
	"strings"
	"testing"
)

func TestScreenColumn(t *testing.T) {
	tests := []struct {
		line string
		col  int
		want int
	}{
		{"", 0, 0},
		{"abc", 0, 0},
		{"abc", 2, 2},
		{"abc", 3, 3},
		{"\tx", 1, 4},
		{"ab\tx", 3, 4},
		{"ab\tx", 4, 5},
		{"日本", 1, 2},
		{"日本", 2, 4},
		{"e\u0301x", 2, 1},
	}

	for _, tt := range tests {
		if got := screenColumn(tt.line, tt.col); got != tt.want {
			t.Errorf("screenColumn(%q, %d) = %d, want %d", tt.line, tt.col, got, tt.want)
		}
	}
}

func TestScrollTop(t *testing.T) {
	tests := []struct {
		top, line, height int
		want              int
	}{
		{0, 0, 10, 0},
		{0, 9, 10, 0},
		{0, 10, 10, 1},
		{5, 3, 10, 3},
		{5, 14, 10, 5},
		{0, 7, 0, 7},
	}

	for _, tt := range tests {
		if got := scrollTop(tt.top, tt.line, tt.height); got != tt.want {
			t.Errorf("scrollTop(%d, %d, %d) = %d, want %d", tt.top, tt.line, tt.height, got, tt.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	got := statusText("/tmp/notes.md", true, 2, 4, "", 40)
	if len(got) != 40 {
		t.Errorf("len = %d, want 40: %q", len(got), got)
	}
	if !strings.HasPrefix(got, " notes.md [+]") {
		t.Errorf("status = %q", got)
	}
	if !strings.HasSuffix(got, "Ln 3, Col 5 ") {
		t.Errorf("status = %q", got)
	}

	got = statusText("", false, 0, 0, "saved", 10)
	if got != " [scratch]  saved" {
		t.Errorf("narrow status = %q", got)
	}
}
