package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func bufferWith(lines ...string) *Buffer {
	buf := NewBuffer("")
	buf.lines = lines
	return buf
}

func TestNewBuffer(t *testing.T) {
	buf := NewBuffer("")
	if buf.LineCount() != 1 || buf.Line(0) != "" {
		t.Errorf("new buffer should have one empty line, got %v", buf.lines)
	}
	if buf.Modified() {
		t.Error("new buffer should not be modified")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	os.WriteFile(path, []byte("hello\nworld\n"), 0644)

	buf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if buf.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", buf.LineCount(), buf.lines)
	}
	if buf.Line(0) != "hello" || buf.Line(1) != "world" {
		t.Errorf("unexpected content: %v", buf.lines)
	}
	if buf.Filename != path {
		t.Errorf("filename: %q", buf.Filename)
	}
}

func TestLoadLineCounts(t *testing.T) {
	tests := []struct {
		content string
		lines   int
	}{
		{"", 1},
		{"\n", 1},
		{"one", 1},
		{"one\n", 1},
		{"one\ntwo\nthree\n", 3},
		{"one\n\n", 2},
		{"line1\nline2", 2},
	}
	dir := t.TempDir()
	for i, tc := range tests {
		path := filepath.Join(dir, "f"+string(rune('a'+i)))
		os.WriteFile(path, []byte(tc.content), 0644)
		buf, err := Load(path)
		if err != nil {
			t.Fatalf("%q: Load: %v", tc.content, err)
		}
		if buf.LineCount() != tc.lines {
			t.Errorf("%q: expected %d lines, got %d", tc.content, tc.lines, buf.LineCount())
		}
	}
}

func TestLoadCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dos.txt")
	os.WriteFile(path, []byte("hello\r\nworld\r\n"), 0644)

	buf, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if buf.LineCount() != 2 || buf.Line(0) != "hello" || buf.Line(1) != "world" {
		t.Errorf("CRLF not stripped: %q", buf.lines)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrRead) {
		t.Fatalf("expected ErrRead for a directory, got %v", err)
	}
	if errors.Is(err, ErrFileNotFound) {
		t.Error("a directory exists; it should not be reported as missing")
	}
}

func TestInsertChar(t *testing.T) {
	buf := bufferWith("hello")

	c := buf.InsertChar(Cursor{0, 0}, 'H')
	if buf.Line(0) != "Hhello" || c != (Cursor{0, 1}) {
		t.Errorf("insert at 0: %q cursor=%v", buf.Line(0), c)
	}

	c = buf.InsertChar(Cursor{0, 6}, '!')
	if buf.Line(0) != "Hhello!" || c != (Cursor{0, 7}) {
		t.Errorf("insert at end: %q cursor=%v", buf.Line(0), c)
	}

	c = buf.InsertChar(Cursor{0, 3}, '-')
	if buf.Line(0) != "Hhe-llo!" || c != (Cursor{0, 4}) {
		t.Errorf("insert in middle: %q cursor=%v", buf.Line(0), c)
	}
	if !buf.Modified() {
		t.Error("buffer should be modified after edit")
	}
}

func TestDeleteCharBefore(t *testing.T) {
	buf := bufferWith("hello")

	c := buf.DeleteCharBefore(Cursor{0, 5})
	if buf.Line(0) != "hell" || c != (Cursor{0, 4}) {
		t.Errorf("delete last char: %q cursor=%v", buf.Line(0), c)
	}

	c = buf.DeleteCharBefore(Cursor{0, 1})
	if buf.Line(0) != "ell" || c != (Cursor{0, 0}) {
		t.Errorf("delete first char: %q cursor=%v", buf.Line(0), c)
	}
}

func TestDeleteCharBeforeJoinsLines(t *testing.T) {
	buf := bufferWith("hello", "world")

	c := buf.DeleteCharBefore(Cursor{1, 0})
	if buf.LineCount() != 1 || buf.Line(0) != "helloworld" {
		t.Errorf("after join: %v", buf.lines)
	}
	if c != (Cursor{0, 5}) {
		t.Errorf("cursor should land on the join point, got %v", c)
	}
}

func TestDeleteCharBeforeAtDocumentStart(t *testing.T) {
	buf := bufferWith("hello", "world")

	c := buf.DeleteCharBefore(Cursor{0, 0})
	if c != (Cursor{0, 0}) || buf.LineCount() != 2 || buf.Line(0) != "hello" {
		t.Errorf("expected no-op, got cursor=%v lines=%v", c, buf.lines)
	}
	if buf.Modified() {
		t.Error("no-op delete should not mark the buffer modified")
	}
}

func TestSplitLine(t *testing.T) {
	buf := bufferWith("helloworld", "tail")

	c := buf.SplitLine(Cursor{0, 5})
	if buf.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", buf.LineCount())
	}
	if buf.Line(0) != "hello" || buf.Line(1) != "world" || buf.Line(2) != "tail" {
		t.Errorf("after split: %v", buf.lines)
	}
	if c != (Cursor{1, 0}) {
		t.Errorf("cursor should move to start of new line, got %v", c)
	}
}

func TestSplitLineAtEdges(t *testing.T) {
	buf := bufferWith("hello")
	buf.SplitLine(Cursor{0, 0})
	if buf.LineCount() != 2 || buf.Line(0) != "" || buf.Line(1) != "hello" {
		t.Errorf("split at start: %v", buf.lines)
	}

	buf = bufferWith("hello")
	buf.SplitLine(Cursor{0, 5})
	if buf.LineCount() != 2 || buf.Line(0) != "hello" || buf.Line(1) != "" {
		t.Errorf("split at end: %v", buf.lines)
	}
}

func TestInsertThenDeleteRoundTrip(t *testing.T) {
	original := []string{"café au lait", "", "日本語"}
	for row, line := range original {
		for col := 0; col <= len([]rune(line)); col++ {
			buf := bufferWith(append([]string(nil), original...)...)
			start := Cursor{row, col}

			c := buf.InsertChar(start, 'x')
			c = buf.DeleteCharBefore(c)

			if c != start {
				t.Errorf("(%d,%d): cursor %v after round trip", row, col, c)
			}
			if buf.Line(row) != line {
				t.Errorf("(%d,%d): line %q after round trip, want %q", row, col, buf.Line(row), line)
			}
		}
	}
}

func TestSplitThenDeleteRoundTrip(t *testing.T) {
	line := "split me here"
	for col := 0; col <= len(line); col++ {
		buf := bufferWith("above", line, "below")

		c := buf.SplitLine(Cursor{1, col})
		if c != (Cursor{2, 0}) {
			t.Fatalf("col %d: split cursor %v", col, c)
		}
		c = buf.DeleteCharBefore(c)

		if buf.LineCount() != 3 || buf.Line(1) != line {
			t.Errorf("col %d: lines %v after round trip", col, buf.lines)
		}
		if c != (Cursor{1, col}) {
			t.Errorf("col %d: cursor %v after round trip", col, c)
		}
	}
}

func TestClamp(t *testing.T) {
	buf := bufferWith("hello", "hi")
	tests := []struct {
		in, want Cursor
	}{
		{Cursor{-1, -3}, Cursor{0, 0}},
		{Cursor{5, 1}, Cursor{1, 1}},
		{Cursor{1, 10}, Cursor{1, 2}},
		{Cursor{0, 5}, Cursor{0, 5}},
	}
	for _, tc := range tests {
		if got := buf.Clamp(tc.in); got != tc.want {
			t.Errorf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLineLen(t *testing.T) {
	buf := bufferWith("hello", "日本語")

	if buf.LineLen(0) != 5 {
		t.Errorf("expected 5, got %d", buf.LineLen(0))
	}
	if buf.LineLen(1) != 3 {
		t.Errorf("expected 3 for Japanese, got %d", buf.LineLen(1))
	}
	if buf.LineLen(7) != 0 || buf.Line(7) != "" {
		t.Error("out-of-range line should read as empty")
	}
}

func TestUnicodeInsertDelete(t *testing.T) {
	buf := bufferWith("café")

	buf.InsertChar(Cursor{0, 4}, '!')
	if buf.Line(0) != "café!" {
		t.Errorf("unicode insert: %q", buf.Line(0))
	}

	buf.DeleteCharBefore(Cursor{0, 4})
	if buf.Line(0) != "caf!" {
		t.Errorf("after unicode delete: %q", buf.Line(0))
	}
}
