//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// pollTimeout bounds how long ReadKey waits before checking for a
	// resize or flushing an incomplete escape sequence.
	pollTimeout = 100 // milliseconds
)

// ErrTerminalUnavailable is returned by Open when the process is not
// attached to an interactive terminal.
var ErrTerminalUnavailable = errors.New("terminal unavailable: not an interactive terminal")

// RenderError is an I/O failure while drawing to the terminal.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Session owns raw mode, the alternate screen buffer, and key input for one
// terminal. Release it with Close on every exit path.
type Session struct {
	in       *os.File
	out      *os.File
	inFd     int
	outFd    int
	oldState *term.State
	sigwinch chan os.Signal
	pending  []byte
	closed   bool
}

// Open puts the controlling terminal (stdin/stdout) into raw mode.
func Open() (*Session, error) {
	return OpenFiles(os.Stdin, os.Stdout)
}

// OpenFiles puts the terminal behind in into raw mode and draws on out.
func OpenFiles(in, out *os.File) (*Session, error) {
	if !isatty.IsTerminal(in.Fd()) || !isatty.IsTerminal(out.Fd()) {
		return nil, ErrTerminalUnavailable
	}

	s := &Session{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}

	// Switch to raw mode.
	oldState, err := term.MakeRaw(s.inFd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTerminalUnavailable, err)
	}
	s.oldState = oldState

	// Enter alternate screen buffer.
	if _, err := s.out.WriteString(enterAltScreen); err != nil {
		_ = term.Restore(s.inFd, oldState)
		return nil, &RenderError{Op: "enter alternate screen", Err: err}
	}

	// Listen for resize signals.
	s.sigwinch = make(chan os.Signal, 1)
	signal.Notify(s.sigwinch, unix.SIGWINCH)

	return s, nil
}

// Close leaves the alternate screen and restores the terminal's original
// mode. Calls after the first are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	signal.Stop(s.sigwinch)
	_, werr := s.out.WriteString(resetAttrs + showCursor + leaveAltScreen)
	if err := term.Restore(s.inFd, s.oldState); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	if werr != nil {
		return &RenderError{Op: "leave alternate screen", Err: werr}
	}
	return nil
}

// Size returns the current terminal dimensions in character cells.
func (s *Session) Size() (width, height int, err error) {
	w, h, err := term.GetSize(s.outFd)
	if err != nil {
		return 0, 0, &RenderError{Op: "query size", Err: err}
	}
	if w <= 0 || h <= 0 {
		return defaultWidth, defaultHeight, nil
	}
	return w, h, nil
}

// Render draws a complete frame with a single write.
func (s *Session) Render(f Frame) error {
	if _, err := s.out.WriteString(f.String()); err != nil {
		return &RenderError{Op: "write frame", Err: err}
	}
	return nil
}

// ReadKey blocks until the next key is available. A resize that arrives
// while waiting is reported as KeyResize. Bytes from one read that hold
// several keys are returned one call at a time, in order.
func (s *Session) ReadKey() (Key, error) {
	buf := make([]byte, 256)
	for {
		if len(s.pending) > 0 {
			if k, n := parseKey(s.pending); n > 0 {
				s.pending = s.pending[n:]
				return k, nil
			}
		}

		select {
		case <-s.sigwinch:
			return Key{Type: KeyResize}, nil
		default:
		}

		ready, err := s.poll()
		if err != nil {
			return Key{}, err
		}
		if !ready {
			if len(s.pending) > 0 {
				// Nothing followed an incomplete sequence (e.g. a bare Escape).
				s.pending = s.pending[:0]
				return Key{Type: KeyUnknown}, nil
			}
			continue
		}

		n, err := unix.Read(s.inFd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return Key{}, fmt.Errorf("read input: %w", err)
		}
		if n == 0 {
			return Key{}, fmt.Errorf("read input: %w", io.EOF)
		}
		s.pending = append(s.pending, buf[:n]...)
	}
}

func (s *Session) poll() (bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(s.inFd), Events: unix.POLLIN},
	}
	n, err := unix.Poll(fds, pollTimeout)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, fmt.Errorf("poll input: %w", err)
	}
	if n > 0 && fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 && fds[0].Revents&unix.POLLIN == 0 {
		return false, fmt.Errorf("poll input: %w", io.EOF)
	}
	return n > 0, nil
}
