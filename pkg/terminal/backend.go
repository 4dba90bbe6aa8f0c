// Package terminal implements the raw-mode TTY backend: it puts the
// terminal into raw mode on the alternate screen, reports dimensions,
// diff-renders a CellBuffer against the previously presented frame, and
// decodes stdin bytes into events.InputEvent values.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// ErrUnavailable is returned by Start when stdout/stdin is not a TTY or
// raw mode otherwise cannot be entered. Fatal at startup; the CLI maps
// it to exit code 2.
var ErrUnavailable = errors.New("terminal: unavailable")

// Backend abstracts terminal I/O so Lifecycle can be driven by a fake in
// tests.
type Backend interface {
	Start(onInput func([]byte), onResize func()) error
	Stop()
	Write(p []byte)
	WriteString(s string)
	Columns() int
	Rows() int
	HideCursor()
	ShowCursor()
}

// ProcessBackend is a Backend over os.Stdin/os.Stdout, using termios raw
// mode and SIGWINCH for resize notification.
type ProcessBackend struct {
	origTermios *unix.Termios
	onInput     func([]byte)
	onResize    func()
	sigCh       chan os.Signal
	stopCancel  context.CancelFunc
	stopCtx     context.Context

	sizeMu sync.RWMutex
	cols   int
	rows   int
}

// NewProcessBackend returns a ProcessBackend ready for Start.
func NewProcessBackend() *ProcessBackend {
	return &ProcessBackend{}
}

// Start enters raw mode, enables Kitty keyboard disambiguation and SGR
// mouse reporting, and begins reading stdin on a background goroutine.
func (t *ProcessBackend) Start(onInput func([]byte), onResize func()) error {
	t.onInput = onInput
	t.onResize = onResize
	t.stopCtx, t.stopCancel = context.WithCancel(context.Background())

	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return ErrUnavailable
	}

	fd := int(os.Stdin.Fd())
	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("%w: get termios: %v", ErrUnavailable, err)
	}
	t.origTermios = orig

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("%w: set raw mode: %v", ErrUnavailable, err)
	}

	t.refreshSize()

	t.WriteString("\x1b[?1049h") // alternate screen; leave scrollback intact
	t.WriteString(ansi.KittyKeyboard(ansi.KittyDisambiguateEscapeCodes, 1))
	t.WriteString(ansi.RequestKittyKeyboard)
	t.WriteString("\x1b[?1006h\x1b[?1003h") // SGR mouse reporting, any-motion

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				data := make([]byte, n)
				copy(data, buf[:n])
				t.onInput(data)
			}
			if err != nil {
				return
			}
		}
	}()

	t.sigCh = make(chan os.Signal, 1)
	signal.Notify(t.sigCh, syscall.SIGWINCH)
	go func() {
		for {
			select {
			case <-t.sigCh:
				t.refreshSize()
				if t.onResize != nil {
					t.onResize()
				}
			case <-t.stopCtx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop restores the original termios state and tears down background
// goroutines. Safe to call even if Start failed partway through.
func (t *ProcessBackend) Stop() {
	t.WriteString("\x1b[?1003l\x1b[?1006l")
	t.WriteString(ansi.KittyKeyboard(0, 1))
	t.WriteString("\x1b[?1049l")

	if t.stopCancel != nil {
		t.stopCancel()
	}
	if t.sigCh != nil {
		signal.Stop(t.sigCh)
	}
	if t.origTermios != nil {
		fd := int(os.Stdin.Fd())
		_ = unix.IoctlSetTermios(fd, ioctlSetTermios, t.origTermios)
	}
}

func (t *ProcessBackend) Write(p []byte)        { _, _ = os.Stdout.Write(p) }
func (t *ProcessBackend) WriteString(s string)  { _, _ = os.Stdout.WriteString(s) }

func (t *ProcessBackend) Columns() int {
	t.sizeMu.RLock()
	defer t.sizeMu.RUnlock()
	if t.cols == 0 {
		return 80
	}
	return t.cols
}

func (t *ProcessBackend) Rows() int {
	t.sizeMu.RLock()
	defer t.sizeMu.RUnlock()
	if t.rows == 0 {
		return 24
	}
	return t.rows
}

func (t *ProcessBackend) refreshSize() {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return
	}
	t.sizeMu.Lock()
	if ws.Col > 0 {
		t.cols = int(ws.Col)
	}
	if ws.Row > 0 {
		t.rows = int(ws.Row)
	}
	t.sizeMu.Unlock()
}

func (t *ProcessBackend) HideCursor() { t.WriteString("\x1b[?25l") }
func (t *ProcessBackend) ShowCursor() { t.WriteString("\x1b[?25h") }
