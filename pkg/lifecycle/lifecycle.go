package lifecycle

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"
	"time"

	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/maddestlabs/tstorie/pkg/compositor"
	"github.com/maddestlabs/tstorie/pkg/events"
	"github.com/maddestlabs/tstorie/pkg/layer"
	"github.com/maddestlabs/tstorie/pkg/terminal"
)

// Phase names a state in the lifecycle machine.
type Phase int

const (
	Uninitialised Phase = iota
	SettingUp
	Running
	ShuttingDown
	Exited
)

// DefaultLayerID names the layer SettingUp creates so user code always
// has somewhere to draw without calling AddLayer first.
const DefaultLayerID = "default"

// DefaultHz is the loop's target rate absent a caller override.
const DefaultHz = 60

// UpdateHandlerFunc is a global update-phase handler, run in priority
// order before the user hook.
type UpdateHandlerFunc func(state *AppState)

// RenderHandlerFunc is a global render-phase handler, run in priority
// order before the user hook and the Compositor pass.
type RenderHandlerFunc func(state *AppState)

// Hooks are the user-supplied init/update/render/teardown callbacks.
// Input is wired through the Router's section
// hook, not here, since dispatch needs per-event routing the other
// three phases don't.
type Hooks struct {
	Init     func(state *AppState) error
	Update   func(state *AppState)
	Render   func(state *AppState)
	Teardown func(state *AppState)
}

// Lifecycle drives one application run: SettingUp once, then
// DrainInput→Update→Render→Present repeated at TargetHz until
// quit/SIGINT, then ShuttingDown.
type Lifecycle struct {
	Backend terminal.Backend
	Router  *events.Router
	Hooks   Hooks
	ThemeBg cellbuf.Style
	Compositor *compositor.Compositor
	TargetHz   int
	Logger     *slog.Logger
	CrashLog   string // path a panic's crash report is appended to; empty disables

	// CrashHook, if set, runs before the plain-text CrashLog append,
	// letting a caller (pkg/runtime) build a richer, session-scoped
	// crash report from the same panic value and stack trace.
	CrashHook func(panicValue any, stack string)

	UpdateHandlers *events.Registry[UpdateHandlerFunc]
	RenderHandlers *events.Registry[RenderHandlerFunc]

	phase    Phase
	state    *AppState
	renderer *terminal.Renderer
	parser   *terminal.Parser
	frame    *cellbuf.CellBuffer

	inputMu sync.Mutex
	inputQ  [][]byte
	resized bool

	sigintReceived bool
}

// SigIntReceived reports whether Run's loop observed SIGINT before
// shutting down, so a caller can pick exit code 130 over 0.
func (lc *Lifecycle) SigIntReceived() bool {
	return lc.sigintReceived
}

// New returns a Lifecycle ready for Run, wired to backend and themeBg.
func New(backend terminal.Backend, themeBg cellbuf.Style, hooks Hooks, logger *slog.Logger) *Lifecycle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lifecycle{
		Backend:        backend,
		Router:         events.NewRouter(),
		Hooks:          hooks,
		ThemeBg:        themeBg,
		Compositor:     compositor.New(themeBg),
		TargetHz:       DefaultHz,
		Logger:         logger,
		UpdateHandlers: events.NewRegistry[UpdateHandlerFunc](),
		RenderHandlers: events.NewRegistry[RenderHandlerFunc](),
		parser:         terminal.NewParser(),
	}
}

// Phase reports the current lifecycle state.
func (lc *Lifecycle) Phase() Phase { return lc.phase }

// State returns the live AppState (only meaningful once Run has begun
// SettingUp; nil before that).
func (lc *Lifecycle) State() *AppState { return lc.state }

// Run executes the full state machine to completion: SettingUp,
// Running until quit/SIGINT, ShuttingDown. Terminal restoration is
// guaranteed on every exit path including a recovered panic.
func (lc *Lifecycle) Run() (err error) {
	if err := lc.setUp(); err != nil {
		lc.phase = Exited
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT)
	defer signal.Stop(sigCh)

	defer func() {
		if r := recover(); r != nil {
			lc.recoverPanic(r)
			err = fmt.Errorf("lifecycle: recovered panic: %v", r)
		}
		lc.shutDown()
	}()

	lc.phase = Running
	lc.state.Running = true
	frameDur := time.Second / time.Duration(lc.TargetHz)
	last := time.Now()

	for lc.phase == Running {
		select {
		case <-sigCh:
			lc.sigintReceived = true
			lc.state.QuitRequested = true
		default:
		}

		start := time.Now()
		lc.drainInput()
		lc.update(start.Sub(last))
		last = start
		lc.render()
		lc.present()

		if lc.state.QuitRequested {
			lc.phase = ShuttingDown
			break
		}

		if elapsed := time.Since(start); elapsed < frameDur {
			time.Sleep(frameDur - elapsed)
		}
	}

	return nil
}

func (lc *Lifecycle) setUp() error {
	lc.phase = SettingUp

	if err := lc.Backend.Start(lc.onInput, lc.onResize); err != nil {
		if errors.Is(err, terminal.ErrUnavailable) {
			return err
		}
		return fmt.Errorf("lifecycle: terminal start: %w", err)
	}
	lc.Backend.HideCursor()

	cols, rows := lc.Backend.Columns(), lc.Backend.Rows()
	layers := layer.New()
	if _, err := layers.AddLayer(DefaultLayerID, 0, cols, rows); err != nil {
		return fmt.Errorf("lifecycle: create default layer: %w", err)
	}

	lc.state = &AppState{
		TermW:   uint16(cols),
		TermH:   uint16(rows),
		Layers:  layers,
		ThemeBg: lc.ThemeBg,
	}
	lc.frame = cellbuf.New(cols, rows)
	lc.renderer = terminal.NewRenderer(lc.Backend)

	lc.Logger.Info("lifecycle: setting up", "cols", cols, "rows", rows)

	if lc.Hooks.Init != nil {
		if err := lc.Hooks.Init(lc.state); err != nil {
			return fmt.Errorf("lifecycle: user init: %w", err)
		}
	}
	return nil
}

// onInput is the Backend's byte callback; it only queues bytes; actual
// decoding and dispatch happens on the lifecycle thread during
// DrainInput, preserving the "no cross-thread shared mutable state in
// the core loop" invariant for everything except this queue.
func (lc *Lifecycle) onInput(data []byte) {
	lc.inputMu.Lock()
	lc.inputQ = append(lc.inputQ, data)
	lc.inputMu.Unlock()
}

func (lc *Lifecycle) onResize() {
	lc.inputMu.Lock()
	lc.resized = true
	lc.inputMu.Unlock()
}

// drainInput decodes and dispatches every event queued since the last
// frame, then folds in a resize if one arrived off the SIGWINCH path.
func (lc *Lifecycle) drainInput() {
	lc.inputMu.Lock()
	queued := lc.inputQ
	lc.inputQ = nil
	resized := lc.resized
	lc.resized = false
	lc.inputMu.Unlock()

	for _, chunk := range queued {
		for _, ev := range lc.parser.Feed(chunk) {
			lc.applyMouseState(ev)
			lc.Router.Dispatch(ev, lc.state)
		}
	}

	if resized {
		cols, rows := lc.Backend.Columns(), lc.Backend.Rows()
		lc.state.OnResize(uint16(cols), uint16(rows))
		lc.frame.Resize(cols, rows)
	}
}

// applyMouseState keeps AppState.Mouse current regardless of whether an
// input handler later consumes the event; position tracking is state,
// not a dispatch concern.
func (lc *Lifecycle) applyMouseState(ev events.InputEvent) {
	switch ev.Kind {
	case events.KindMouseMove:
		lc.state.Mouse.X, lc.state.Mouse.Y = ev.X, ev.Y
	case events.KindMouseButton:
		lc.state.Mouse.X, lc.state.Mouse.Y = ev.X, ev.Y
		if ev.Action == events.Press {
			lc.state.Mouse.Buttons |= 1 << uint(ev.Button)
		} else if ev.Action == events.Release {
			lc.state.Mouse.Buttons &^= 1 << uint(ev.Button)
		}
	}
}

// update advances frame/time/dt exactly once per frame, then runs
// global handlers in priority order, then the user hook.
func (lc *Lifecycle) update(elapsed time.Duration) {
	lc.state.Frame++
	lc.state.DtS = float32(elapsed.Seconds())
	lc.state.TimeS += elapsed.Seconds()

	lc.UpdateHandlers.Each(func(_ string, fn UpdateHandlerFunc) {
		fn(lc.state)
	})
	if lc.Hooks.Update != nil {
		lc.Hooks.Update(lc.state)
	}
}

// render runs global render handlers, then the user hook, then the
// Compositor pass into the frame buffer.
func (lc *Lifecycle) render() {
	lc.RenderHandlers.Each(func(_ string, fn RenderHandlerFunc) {
		fn(lc.state)
	})
	if lc.Hooks.Render != nil {
		lc.Hooks.Render(lc.state)
	}
	lc.Compositor.ThemeBg = lc.state.ThemeBg
	lc.Compositor.Compose(lc.state.Layers, lc.frame)
}

// present hands the frame buffer to the terminal backend's diff
// renderer.
func (lc *Lifecycle) present() {
	lc.renderer.Present(lc.frame)
}

// shutDown runs the user teardown hook, then guarantees terminal
// restoration.
func (lc *Lifecycle) shutDown() {
	if lc.phase != ShuttingDown {
		lc.phase = ShuttingDown
	}
	if lc.Hooks.Teardown != nil && lc.state != nil {
		lc.Hooks.Teardown(lc.state)
	}
	lc.Backend.ShowCursor()
	lc.Backend.Stop()
	lc.phase = Exited
	lc.Logger.Info("lifecycle: exited")
}

// recoverPanic handles a panic escaping the frame loop: it still trips
// the terminal-restoration guard (via the
// deferred shutDown in Run) and, if CrashLog is set, appends a crash
// report before returning control to the caller for exit-code handling.
func (lc *Lifecycle) recoverPanic(r any) {
	stack := string(debug.Stack())
	lc.Logger.Error("lifecycle: panic recovered", "panic", r)

	if lc.CrashHook != nil {
		lc.CrashHook(r, stack)
	}

	if lc.CrashLog == "" {
		return
	}
	f, err := os.OpenFile(lc.CrashLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "[%s] panic: %v\n%s\n", time.Now().Format(time.RFC3339), r, stack)
}
