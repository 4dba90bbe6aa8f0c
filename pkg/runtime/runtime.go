// Package runtime wires a ScriptHost (the scripting language's entry
// point) to pkg/lifecycle's frame loop and
// pkg/events' input router. Runtime is the single non-global value a
// running session needs: everything lives on it or on the
// lifecycle.AppState it wraps, never in a package-level var.
package runtime

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/maddestlabs/tstorie/pkg/events"
	"github.com/maddestlabs/tstorie/pkg/lifecycle"
)

// ScriptHost is the seam between the engine and the scripting
// language. The VM implements this; internal/bindingtest provides a
// minimal fake for this package's own tests.
type ScriptHost interface {
	Init(rt *Runtime) error
	Update(rt *Runtime, dtSeconds float64) error
	Render(rt *Runtime) error
	HandleInput(rt *Runtime, ev events.InputEvent) (consumed bool)
	Teardown(rt *Runtime)
}

// Runtime carries one session's lifecycle, section navigation, and
// crash state, and is the only argument a ScriptHost receives back;
// it never reaches into a global to find its world.
type Runtime struct {
	Lifecycle *lifecycle.Lifecycle
	Sections  *SectionManager
	SessionID string

	// LastCrash is populated by the CrashHook installed in New, just
	// before Lifecycle.Run returns from a recovered panic. Nil on a
	// clean exit.
	LastCrash *CrashReport

	host ScriptHost
}

// New constructs a Runtime wired to lc and host, installing lc's Hooks
// and Router section hook so the remainder of the lifecycle never
// needs to know ScriptHost exists. Callers then call Run(rt).
func New(lc *lifecycle.Lifecycle, host ScriptHost) *Runtime {
	rt := &Runtime{
		Lifecycle: lc,
		Sections:  NewSectionManager(),
		SessionID: uuid.New().String(),
		host:      host,
	}

	lc.Hooks = lifecycle.Hooks{
		Init: func(*lifecycle.AppState) error {
			return rt.host.Init(rt)
		},
		Update: func(state *lifecycle.AppState) {
			if err := rt.host.Update(rt, float64(state.DtS)); err != nil {
				lc.Logger.Error("runtime: update error", "err", err)
			}
		},
		Render: func(*lifecycle.AppState) {
			if err := rt.host.Render(rt); err != nil {
				lc.Logger.Error("runtime: render error", "err", err)
			}
		},
		Teardown: func(*lifecycle.AppState) {
			rt.host.Teardown(rt)
		},
	}

	lc.Router.SetSectionHook(func(ev events.InputEvent, _ events.RouterState) bool {
		return rt.host.HandleInput(rt, ev)
	})

	lc.CrashHook = func(panicValue any, stack string) {
		report := NewCrashReport(rt.SessionID, panicValue, stack)
		rt.LastCrash = &report
	}

	return rt
}

// State returns the live AppState, or nil before SettingUp completes.
func (rt *Runtime) State() *lifecycle.AppState {
	return rt.Lifecycle.State()
}

// Run drives rt's lifecycle to completion, returning any error the
// loop produced (including a recovered panic's wrapped message; see
// rt.LastCrash for the structured version).
func Run(rt *Runtime) error {
	if err := rt.Lifecycle.Run(); err != nil {
		return fmt.Errorf("runtime: session %s: %w", rt.SessionID, err)
	}
	return nil
}
