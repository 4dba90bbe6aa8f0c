// Package lifecycle implements the frame-accurate scheduler:
// Uninitialised → SettingUp → Running (DrainInput → Update →
// Render → Present, repeated) → ShuttingDown → Exited, plus the
// AppState every handler and user hook operates on.
package lifecycle

import (
	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/maddestlabs/tstorie/pkg/layer"
)

// MouseState is AppState's view of pointer position and held buttons,
// best-effort updated from MouseMove/MouseButton events. Motion
// reporting is terminal-dependent; callers must not assume delivery.
type MouseState struct {
	X, Y    uint16
	Buttons uint8
}

// AppState is the per-run state, owned exclusively by the Lifecycle
// and mutated only on the lifecycle goroutine between frames. No
// locking; ownership discipline keeps the hot path contention-free.
type AppState struct {
	Frame         uint64
	TimeS         float64
	DtS           float32
	TermW, TermH  uint16
	Layers        *layer.Stack
	Running       bool
	QuitRequested bool
	Mouse         MouseState
	ThemeBg       cellbuf.Style
}

// RequestQuit satisfies events.RouterState: marks the state so the next
// Running iteration transitions to ShuttingDown.
func (s *AppState) RequestQuit() {
	s.QuitRequested = true
}

// OnResize satisfies events.RouterState: updates the recorded terminal
// extent and resizes every layer buffer to match.
func (s *AppState) OnResize(cols, rows uint16) {
	s.TermW, s.TermH = cols, rows
	if s.Layers != nil {
		s.Layers.ResizeAll(int(cols), int(rows))
	}
}
