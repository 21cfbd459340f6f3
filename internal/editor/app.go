package editor

import (
	"github.com/sirupsen/logrus"

	"github.com/JackWReid/refitui/internal/config"
	"github.com/JackWReid/refitui/internal/terminal"
)

// Screen is the terminal as the controller sees it. terminal.Session
// implements it; tests substitute scripted input.
type Screen interface {
	ReadKey() (terminal.Key, error)
	Size() (width, height int, err error)
	Render(terminal.Frame) error
	Close() error
}

// Opener acquires the screen. It is called only after the file has loaded.
type Opener func() (Screen, error)

// State is the controller state.
type State int

const (
	StateRunning State = iota
	StateExiting
)

const quitHint = "Ctrl-Q to quit"

// App is the top-level editor state.
type App struct {
	filename string
	open     Opener
	log      logrus.FieldLogger

	buf       *Buffer
	cursor    Cursor
	viewport  *Viewport
	statusBar *StatusBar
	screen    Screen
	state     State
}

func NewApp(filename string, cfg config.Config, open Opener, log logrus.FieldLogger) *App {
	vp := NewViewport(0, 0)
	vp.TabWidth = cfg.TabWidth
	vp.StatusBar = cfg.StatusBar
	return &App{
		filename:  filename,
		open:      open,
		log:       log,
		viewport:  vp,
		statusBar: NewStatusBar(),
	}
}

// Run loads the file, takes over the terminal and processes keys until
// Ctrl+Q. The screen is closed on every return path once it was opened.
func (a *App) Run() (err error) {
	buf, err := Load(a.filename)
	if err != nil {
		return err
	}
	a.buf = buf

	screen, err := a.open()
	if err != nil {
		return err
	}
	a.screen = screen
	defer func() {
		if cerr := screen.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	a.log.WithFields(logrus.Fields{
		"path":  a.filename,
		"lines": a.buf.LineCount(),
	}).Info("session started")

	a.state = StateRunning
	a.statusBar.SetMessage(quitHint)
	if err := a.render(); err != nil {
		return err
	}

	// Main event loop.
	for a.state == StateRunning {
		key, err := screen.ReadKey()
		if err != nil {
			a.log.WithError(err).Error("reading input failed")
			return err
		}

		a.handleKey(key)
		if a.state == StateExiting {
			break
		}
		if err := a.render(); err != nil {
			return err
		}
	}

	a.log.WithField("modified", a.buf.Modified()).Info("session ended")
	return nil
}

func (a *App) handleKey(key terminal.Key) {
	// Clear any temporary status message on input.
	a.statusBar.ClearMessage()

	switch key.Type {
	case terminal.KeyCtrlQ:
		a.state = StateExiting
	case terminal.KeyUp, terminal.KeyDown, terminal.KeyLeft, terminal.KeyRight:
		a.moveCursor(key.Type)
	case terminal.KeyRune:
		a.cursor = a.buf.InsertChar(a.cursor, key.Rune)
	case terminal.KeyEnter:
		a.cursor = a.buf.SplitLine(a.cursor)
	case terminal.KeyBackspace:
		a.cursor = a.buf.DeleteCharBefore(a.cursor)
	case terminal.KeyResize:
		// Size is re-read by render.
	default:
		a.log.WithField("key", key.Type).Debug("ignored key")
	}
}

// moveCursor moves the cursor one step, clamping to valid positions.
// Left and Right stop at the ends of the line rather than wrapping.
func (a *App) moveCursor(dir terminal.KeyType) {
	c := a.cursor
	switch dir {
	case terminal.KeyLeft:
		if c.Col > 0 {
			c.Col--
		}
	case terminal.KeyRight:
		if c.Col < a.buf.LineLen(c.Row) {
			c.Col++
		}
	case terminal.KeyUp:
		c.Row--
	case terminal.KeyDown:
		c.Row++
	}
	a.cursor = a.buf.Clamp(c)
}

func (a *App) render() error {
	width, height, err := a.screen.Size()
	if err != nil {
		a.log.WithError(err).Error("querying terminal size failed")
		return err
	}
	if a.viewport.Resize(width, height) {
		a.log.WithFields(logrus.Fields{"width": width, "height": height}).Debug("terminal size")
	}

	a.viewport.Reconcile(a.buf, a.cursor)
	row, col := a.viewport.ScreenCursor(a.buf, a.cursor)

	frame := terminal.Frame{
		Width:      width,
		Height:     height,
		Rows:       a.viewport.Rows(a.buf),
		ShowStatus: a.viewport.StatusBar,
		CursorRow:  row,
		CursorCol:  col,
	}
	if frame.ShowStatus {
		left := a.statusBar.FormatLeft(a.buf.Filename, a.buf.LineCount(), a.buf.Modified())
		right := a.statusBar.FormatRight(a.cursor)
		frame.Status = a.statusBar.Compose(left, right, width)
	}

	if err := a.screen.Render(frame); err != nil {
		a.log.WithError(err).Error("render failed")
		return err
	}
	return nil
}

// Cursor returns the logical cursor position.
func (a *App) Cursor() Cursor { return a.cursor }

// Buffer returns the document being edited; nil before Run loads it.
func (a *App) Buffer() *Buffer { return a.buf }

// Top returns the first visible line.
func (a *App) Top() int { return a.viewport.Top }

// State returns the controller state.
func (a *App) State() State { return a.state }
