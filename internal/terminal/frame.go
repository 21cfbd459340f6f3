package terminal

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	clearScreen    = "\x1b[2J\x1b[H"
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	reverseVideo   = "\x1b[7m"
	resetAttrs     = "\x1b[0m"
)

// Frame is one complete screen: text rows, an optional status row on the
// last line, and the hardware cursor position (0-based, screen cells).
type Frame struct {
	Width      int
	Height     int
	Rows       []string
	Status     string
	ShowStatus bool
	CursorRow  int
	CursorCol  int
}

// TextHeight returns the number of rows available for document text.
func (f Frame) TextHeight() int {
	h := f.Height
	if f.ShowStatus {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// String builds the escape-sequence stream that draws the frame in one write.
func (f Frame) String() string {
	var b strings.Builder

	// Hide cursor during drawing.
	b.WriteString(hideCursor)
	b.WriteString(clearScreen)

	textRows := f.TextHeight()
	for i := 0; i < textRows && i < f.Height; i++ {
		b.WriteString(fmt.Sprintf("\x1b[%d;1H", i+1))
		text := ""
		if i < len(f.Rows) {
			text = f.Rows[i]
		}
		b.WriteString(fitWidth(text, f.Width))
	}

	if f.ShowStatus && f.Height > 1 {
		b.WriteString(fmt.Sprintf("\x1b[%d;1H", f.Height))
		b.WriteString(reverseVideo)
		b.WriteString(fitWidth(f.Status, f.Width))
		b.WriteString(resetAttrs)
	}

	row, col := f.CursorRow, f.CursorCol
	if row >= textRows {
		row = textRows - 1
	}
	if col >= f.Width {
		col = f.Width - 1
	}
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	b.WriteString(fmt.Sprintf("\x1b[%d;%dH", row+1, col+1))
	b.WriteString(showCursor)

	return b.String()
}

// fitWidth truncates or pads s to exactly width display cells.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}
