package terminal

import (
	"unicode"
	"unicode/utf8"
)

// KeyType classifies a decoded input event.
type KeyType int

// Key types.
const (
	KeyRune      KeyType = iota // Printable character (including Tab)
	KeyEnter                    // Enter/Return
	KeyBackspace                // Backspace/Delete-backward
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyCtrlQ                    // Ctrl+Q
	KeyResize                   // Terminal was resized while waiting for input
	KeyUnknown                  // Unrecognised or malformed sequence
)

var keyNames = map[KeyType]string{
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyCtrlQ:     "ctrl+q",
	KeyResize:    "resize",
	KeyUnknown:   "unknown",
}

func (k KeyType) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "invalid"
}

// Key is a single input event.
type Key struct {
	Type KeyType
	Rune rune
}

const (
	byteCtrlQ     = 17
	byteEscape    = 27
	byteDelete    = 127
	byteBackspace = 8
)

// parseKey decodes the first key in buf and returns it together with the
// number of bytes it occupies. n == 0 means buf holds only the start of a
// sequence and more input is needed before it can be decoded.
func parseKey(buf []byte) (Key, int) {
	if len(buf) == 0 {
		return Key{Type: KeyUnknown}, 0
	}

	b := buf[0]
	switch {
	case b == byteEscape:
		return parseEscape(buf)
	case b == '\r':
		// Some terminals send CRLF for Enter on paste.
		if len(buf) > 1 && buf[1] == '\n' {
			return Key{Type: KeyEnter}, 2
		}
		return Key{Type: KeyEnter}, 1
	case b == '\n':
		return Key{Type: KeyEnter}, 1
	case b == byteDelete || b == byteBackspace:
		return Key{Type: KeyBackspace}, 1
	case b == byteCtrlQ:
		return Key{Type: KeyCtrlQ}, 1
	case b == '\t':
		return Key{Type: KeyRune, Rune: '\t'}, 1
	case b < 32:
		return Key{Type: KeyUnknown}, 1
	case b < utf8.RuneSelf:
		return Key{Type: KeyRune, Rune: rune(b)}, 1
	}

	// Multi-byte UTF-8 character.
	if !utf8.FullRune(buf) {
		return Key{Type: KeyUnknown}, 0
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError || unicode.IsControl(r) {
		return Key{Type: KeyUnknown}, size
	}
	return Key{Type: KeyRune, Rune: r}, size
}

// parseEscape decodes CSI (ESC [) and SS3 (ESC O) sequences. Only the four
// arrows are bound; every other complete sequence is consumed as KeyUnknown.
func parseEscape(buf []byte) (Key, int) {
	if len(buf) == 1 {
		return Key{Type: KeyUnknown}, 0
	}

	switch buf[1] {
	case '[':
		// Parameter and intermediate bytes, then one final byte.
		i := 2
		for i < len(buf) && buf[i] >= 0x20 && buf[i] <= 0x3F {
			i++
		}
		if i == len(buf) {
			return Key{Type: KeyUnknown}, 0
		}
		final := buf[i]
		if final < 0x40 || final > 0x7E {
			// Malformed: drop what we have, leave the stray byte for the next parse.
			return Key{Type: KeyUnknown}, i
		}
		if i == 2 {
			if k, ok := arrowKey(final); ok {
				return k, i + 1
			}
		}
		return Key{Type: KeyUnknown}, i + 1

	case 'O':
		if len(buf) < 3 {
			return Key{Type: KeyUnknown}, 0
		}
		if k, ok := arrowKey(buf[2]); ok {
			return k, 3
		}
		return Key{Type: KeyUnknown}, 3
	}

	// Alt+key or a bare Escape followed by another key: drop the Escape only.
	return Key{Type: KeyUnknown}, 1
}

func arrowKey(final byte) (Key, bool) {
	switch final {
	case 'A':
		return Key{Type: KeyUp}, true
	case 'B':
		return Key{Type: KeyDown}, true
	case 'C':
		return Key{Type: KeyRight}, true
	case 'D':
		return Key{Type: KeyLeft}, true
	}
	return Key{}, false
}
