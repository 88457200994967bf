package terminal

import (
	"fmt"
	"path/filepath"

	"github.com/rivo/uniseg"
)

const tabWidth = 4

// cluster is one grapheme cluster as laid out on screen.
type cluster struct {
	runes []rune
	x     int
	width int
}

// layout splits line into grapheme clusters with their screen columns.
// Tabs expand to the next multiple of tabWidth.
func layout(line string) []cluster {
	var out []cluster
	x := 0
	state := -1
	rest := line
	for rest != "" {
		var c string
		var w int
		c, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if c == "\t" {
			w = tabWidth - x%tabWidth
		}
		out = append(out, cluster{runes: []rune(c), x: x, width: w})
		x += w
	}
	return out
}

// screenColumn maps a rune column in line to a screen column.
func screenColumn(line string, col int) int {
	n := 0
	x := 0
	for _, c := range layout(line) {
		if n >= col {
			return c.x
		}
		n += len(c.runes)
		x = c.x + c.width
	}
	return x
}

// scrollTop returns the first visible line so that cursorLine is on a
// screen of height lines.
func scrollTop(top, cursorLine, height int) int {
	if height <= 0 {
		return cursorLine
	}
	if cursorLine < top {
		return cursorLine
	}
	if cursorLine >= top+height {
		return cursorLine - height + 1
	}
	return top
}

// statusText builds the status bar for a screen width columns wide.
func statusText(path string, modified bool, line, col int, message string, width int) string {
	name := "[scratch]"
	if path != "" {
		name = filepath.Base(path)
	}
	if modified {
		name += " [+]"
	}
	left := " " + name
	if message != "" {
		left += "  " + message
	}
	right := fmt.Sprintf("Ln %d, Col %d ", line+1, col+1)

	pad := width - uniseg.StringWidth(left) - uniseg.StringWidth(right)
	if pad < 1 {
		return left
	}
	buf := make([]byte, 0, width)
	buf = append(buf, left...)
	for i := 0; i < pad; i++ {
		buf = append(buf, ' ')
	}
	return string(append(buf, right...))
}
