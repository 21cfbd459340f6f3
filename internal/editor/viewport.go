package editor

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

var DefaultTabWidth = 4

// Viewport manages the visible window into the buffer's lines.
type Viewport struct {
	Width     int  // Terminal width
	Height    int  // Terminal height (status bar uses 1 row when shown)
	Top       int  // Index of the first visible line
	TabWidth  int  // Display width of a tab stop
	StatusBar bool // Reserve the last row for the status bar
}

func NewViewport(termWidth, termHeight int) *Viewport {
	return &Viewport{
		Width:     termWidth,
		Height:    termHeight,
		TabWidth:  DefaultTabWidth,
		StatusBar: true,
	}
}

// Resize updates the viewport for new terminal dimensions. It reports
// whether anything changed.
func (v *Viewport) Resize(termWidth, termHeight int) bool {
	changed := termWidth != v.Width || termHeight != v.Height
	v.Width = termWidth
	v.Height = termHeight
	return changed
}

// VisibleLines returns the number of text lines visible (excluding status bar).
func (v *Viewport) VisibleLines() int {
	vis := v.Height
	if v.StatusBar {
		vis--
	}
	if vis < 1 {
		vis = 1
	}
	return vis
}

// Reconcile moves the viewport so the cursor row is visible and returns the
// new top line.
func (v *Viewport) Reconcile(buf *Buffer, c Cursor) int {
	v.Top = Reconcile(c.Row, v.VisibleLines(), buf.LineCount(), v.Top)
	return v.Top
}

// Rows returns the visible lines ready for display.
func (v *Viewport) Rows(buf *Buffer) []string {
	rows := VisibleRows(buf, v.Top, v.VisibleLines())
	for i, row := range rows {
		rows[i] = ExpandLine(row, v.TabWidth)
	}
	return rows
}

// ScreenCursor returns the on-screen position of c.
func (v *Viewport) ScreenCursor(buf *Buffer, c Cursor) (row, col int) {
	return ScreenCursor(buf.Line(c.Row), c, v.Top, v.Width, v.TabWidth)
}

// Reconcile returns the top line that keeps cursorRow inside a window of
// height lines. It depends only on its arguments: the cursor pulls the
// window up or down by the minimum amount, and the result is kept within
// [0, max(0, lineCount-height)].
func Reconcile(cursorRow, height, lineCount, currentTop int) int {
	if height < 1 {
		height = 1
	}
	top := currentTop
	if cursorRow < top {
		top = cursorRow
	}
	if cursorRow >= top+height {
		top = cursorRow - height + 1
	}
	if maxTop := lineCount - height; top > maxTop {
		top = maxTop
	}
	if top < 0 {
		top = 0
	}
	return top
}

// VisibleRows returns up to height lines starting at top. Fewer lines are
// returned when the document ends first.
func VisibleRows(buf *Buffer, top, height int) []string {
	if top < 0 {
		top = 0
	}
	end := top + height
	if end > buf.LineCount() {
		end = buf.LineCount()
	}
	if top >= end {
		return nil
	}
	rows := make([]string, 0, end-top)
	for i := top; i < end; i++ {
		rows = append(rows, buf.Line(i))
	}
	return rows
}

// ScreenCursor translates a buffer position to screen coordinates. line is
// the text of the cursor's row. Lines are not wrapped: the column is the
// display width of the text before the cursor, clamped to the last cell.
func ScreenCursor(line string, c Cursor, top, width, tabWidth int) (row, col int) {
	row = c.Row - top
	col = DisplayColumn(line, c.Col, tabWidth)
	if width > 0 && col > width-1 {
		col = width - 1
	}
	return row, col
}

// DisplayColumn returns the number of screen cells taken by the first col
// runes of line.
func DisplayColumn(line string, col, tabWidth int) int {
	x := 0
	i := 0
	for _, r := range line {
		if i >= col {
			break
		}
		x += cellWidth(r, x, tabWidth)
		i++
	}
	return x
}

// ExpandLine renders tabs as spaces and control characters in caret
// notation so that the text occupies exactly the cells DisplayColumn counts.
func ExpandLine(line string, tabWidth int) string {
	var b strings.Builder
	x := 0
	for _, r := range line {
		w := cellWidth(r, x, tabWidth)
		switch {
		case r == '\t':
			b.WriteString(strings.Repeat(" ", w))
		case unicode.IsControl(r):
			b.WriteString(controlGlyph(r))
		default:
			b.WriteRune(r)
		}
		x += w
	}
	return b.String()
}

func cellWidth(r rune, x, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	switch {
	case r == '\t':
		return tabWidth - x%tabWidth
	case unicode.IsControl(r):
		return len(controlGlyph(r))
	}
	return runewidth.RuneWidth(r)
}

func controlGlyph(r rune) string {
	switch {
	case r < 0x20:
		return "^" + string(r+'@')
	case r == 0x7f:
		return "^?"
	}
	return "?"
}
