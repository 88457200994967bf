package syntax

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// span is a column range on one line.
type span struct {
	start, end int
}

// codeRegions records which parts of a document are code.
type codeRegions struct {
	blockLines map[int]bool
	inline     map[int][]span
}

func (c *codeRegions) regionFor(line, start, end int) Region {
	if c == nil {
		return RegionText
	}
	if c.blockLines[line] {
		return RegionCodeBlock
	}
	for _, s := range c.inline[line] {
		if start < s.end && s.start < end {
			return RegionInlineCode
		}
	}
	return RegionText
}

// lineIndex converts byte offsets in the joined source to line/column.
type lineIndex struct {
	source string
	starts []int
}

func newLineIndex(lines []string) *lineIndex {
	starts := make([]int, len(lines))
	off := 0
	for i, l := range lines {
		starts[i] = off
		off += len(l) + 1
	}
	return &lineIndex{source: strings.Join(lines, "\n"), starts: starts}
}

func (li *lineIndex) line(offset int) int {
	return sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
}

func (li *lineIndex) column(line, offset int) int {
	return utf8.RuneCountInString(li.source[li.starts[line]:offset])
}

// markdown is shared by all tokenizers; goldmark parsers are safe for reuse.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// parseCodeRegions finds code blocks and code spans in lines.
func parseCodeRegions(lines []string) *codeRegions {
	li := newLineIndex(lines)
	source := []byte(li.source)
	root := markdown.Parser().Parse(text.NewReader(source))

	regions := &codeRegions{
		blockLines: make(map[int]bool),
		inline:     make(map[int][]span),
	}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			segs := node.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				regions.blockLines[li.line(seg.Start)] = true
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				t, ok := c.(*ast.Text)
				if !ok {
					continue
				}
				regions.addInline(li, t.Segment.Start, t.Segment.Stop)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return regions
}

// addInline records a code span that may cross line breaks.
func (c *codeRegions) addInline(li *lineIndex, start, stop int) {
	if stop <= start {
		return
	}
	first, last := li.line(start), li.line(stop-1)
	for line := first; line <= last; line++ {
		from := li.starts[line]
		if line == first {
			from = start
		}
		to := li.starts[line] + len(li.lineText(line))
		if line == last {
			to = stop
		}
		c.inline[line] = append(c.inline[line], span{
			start: li.column(line, from),
			end:   li.column(line, to),
		})
	}
}

func (li *lineIndex) lineText(line int) string {
	end := len(li.source)
	if line+1 < len(li.starts) {
		end = li.starts[line+1] - 1
	}
	return li.source[li.starts[line]:end]
}
