package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var (
	// ErrFileNotFound is returned by Load when the path does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrRead is returned by Load when the path exists but cannot be read.
	ErrRead = errors.New("cannot read file")
)

// Cursor is a logical position in the buffer. Col counts runes and may equal
// the line length, meaning "after the last character".
type Cursor struct {
	Row int
	Col int
}

// Buffer holds the document as a slice of lines (hard lines, split on \n).
// Its methods are the only way the text is modified.
type Buffer struct {
	lines    []string
	modified bool
	Filename string
}

func NewBuffer(filename string) *Buffer {
	return &Buffer{
		lines:    []string{""},
		Filename: filename,
	}
}

// Load reads a file into a new buffer.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	b := NewBuffer(path)
	b.SetText(string(data))
	return b, nil
}

// SetText replaces the buffer content with text split into lines.
func (b *Buffer) SetText(text string) {
	// Strip trailing newline to avoid a phantom empty line.
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		b.lines = []string{""}
	} else {
		b.lines = strings.Split(text, "\n")
		for i, line := range b.lines {
			b.lines[i] = strings.TrimSuffix(line, "\r")
		}
	}
	b.modified = false
}

// Modified reports whether the buffer changed since it was loaded.
func (b *Buffer) Modified() bool {
	return b.modified
}

// LineCount returns the number of lines. It is never less than one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of a given line, or "" when out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// LineLen returns the rune-length of a given line.
func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len([]rune(b.lines[row]))
}

// Clamp returns c moved to the nearest valid position.
func (b *Buffer) Clamp(c Cursor) Cursor {
	if c.Row < 0 {
		c.Row = 0
	}
	if c.Row >= len(b.lines) {
		c.Row = len(b.lines) - 1
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if n := b.LineLen(c.Row); c.Col > n {
		c.Col = n
	}
	return c
}

// InsertChar inserts ch at the cursor and returns the cursor advanced by one.
func (b *Buffer) InsertChar(c Cursor, ch rune) Cursor {
	c = b.Clamp(c)
	runes := []rune(b.lines[c.Row])
	newRunes := make([]rune, 0, len(runes)+1)
	newRunes = append(newRunes, runes[:c.Col]...)
	newRunes = append(newRunes, ch)
	newRunes = append(newRunes, runes[c.Col:]...)
	b.lines[c.Row] = string(newRunes)
	b.modified = true
	return Cursor{Row: c.Row, Col: c.Col + 1}
}

// SplitLine breaks the line at the cursor. The returned cursor is at the
// start of the new following line.
func (b *Buffer) SplitLine(c Cursor) Cursor {
	c = b.Clamp(c)
	runes := []rune(b.lines[c.Row])
	before := string(runes[:c.Col])
	after := string(runes[c.Col:])
	b.lines[c.Row] = before
	// Insert new line after.
	newLines := make([]string, 0, len(b.lines)+1)
	newLines = append(newLines, b.lines[:c.Row+1]...)
	newLines = append(newLines, after)
	newLines = append(newLines, b.lines[c.Row+1:]...)
	b.lines = newLines
	b.modified = true
	return Cursor{Row: c.Row + 1, Col: 0}
}

// DeleteCharBefore removes the character before the cursor. At column 0 the
// line is joined onto the previous one and the cursor lands on the join
// point. At the start of the document it does nothing.
func (b *Buffer) DeleteCharBefore(c Cursor) Cursor {
	c = b.Clamp(c)
	if c.Col > 0 {
		runes := []rune(b.lines[c.Row])
		newRunes := make([]rune, 0, len(runes)-1)
		newRunes = append(newRunes, runes[:c.Col-1]...)
		newRunes = append(newRunes, runes[c.Col:]...)
		b.lines[c.Row] = string(newRunes)
		b.modified = true
		return Cursor{Row: c.Row, Col: c.Col - 1}
	}
	if c.Row == 0 {
		return c
	}
	// col == 0: join with previous line.
	joinCol := b.LineLen(c.Row - 1)
	b.joinLines(c.Row - 1)
	return Cursor{Row: c.Row - 1, Col: joinCol}
}

// joinLines joins line[idx] with line[idx+1].
func (b *Buffer) joinLines(idx int) {
	if idx < 0 || idx+1 >= len(b.lines) {
		return
	}
	b.lines[idx] += b.lines[idx+1]
	b.lines = append(b.lines[:idx+1], b.lines[idx+2:]...)
	b.modified = true
}
