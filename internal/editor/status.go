package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
)

// StatusBar generates status bar text.
type StatusBar struct {
	StatusMessage string // Temporary message, cleared on the next key.
}

func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// FormatLeft returns the left-aligned portion of the status bar.
func (s *StatusBar) FormatLeft(filename string, lineCount int, modified bool) string {
	if s.StatusMessage != "" {
		return " " + s.StatusMessage
	}
	dirty := ""
	if modified {
		dirty = " [+]"
	}
	return fmt.Sprintf(" %s - %d lines%s", truncatePath(filename), lineCount, dirty)
}

// FormatRight returns the right-aligned portion of the status bar.
// Positions are shown 1-based.
func (s *StatusBar) FormatRight(c Cursor) string {
	return fmt.Sprintf("Ln %d, Col %d ", c.Row+1, c.Col+1)
}

// Compose lays left and right out across width cells, truncating the left
// side when both do not fit.
func (s *StatusBar) Compose(left, right string, width int) string {
	rightWidth := runewidth.StringWidth(right)
	if rightWidth >= width {
		return runewidth.Truncate(right, width, "")
	}
	maxLeft := width - rightWidth - 1
	if maxLeft < 0 {
		maxLeft = 0
	}
	left = runewidth.Truncate(left, maxLeft, "")

	gap := width - runewidth.StringWidth(left) - rightWidth
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.StatusMessage = msg
}

// ClearMessage clears the temporary status message.
func (s *StatusBar) ClearMessage() {
	s.StatusMessage = ""
}

// truncatePath shortens a file path to parent/basename.
func truncatePath(filename string) string {
	if filename == "" {
		return "[unnamed]"
	}
	dir := filepath.Base(filepath.Dir(filename))
	base := filepath.Base(filename)
	if dir == "." || dir == "/" {
		return base
	}
	return dir + "/" + base
}
