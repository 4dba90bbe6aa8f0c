// Package bindingtest provides a minimal fake ScriptHost used only by
// pkg/runtime's own tests, standing in for the
// out-of-scope scripting language VM that would implement the real
// thing.
package bindingtest

import (
	"github.com/maddestlabs/tstorie/pkg/events"
	"github.com/maddestlabs/tstorie/pkg/runtime"
)

// Host is a ScriptHost counting the calls it receives and keeping the
// last dt and input event, so a test can assert on call counts and
// arguments without a real script VM. It does not record call order.
type Host struct {
	InitErr   error
	UpdateErr error
	RenderErr error
	Consume   bool

	InitCalls     int
	UpdateCalls   int
	RenderCalls   int
	TeardownCalls int
	LastDt        float64
	LastEvent     events.InputEvent
}

var _ runtime.ScriptHost = (*Host)(nil)

func (h *Host) Init(rt *runtime.Runtime) error {
	h.InitCalls++
	return h.InitErr
}

func (h *Host) Update(rt *runtime.Runtime, dtSeconds float64) error {
	h.UpdateCalls++
	h.LastDt = dtSeconds
	return h.UpdateErr
}

func (h *Host) Render(rt *runtime.Runtime) error {
	h.RenderCalls++
	return h.RenderErr
}

func (h *Host) HandleInput(rt *runtime.Runtime, ev events.InputEvent) bool {
	h.LastEvent = ev
	return h.Consume
}

func (h *Host) Teardown(rt *runtime.Runtime) {
	h.TeardownCalls++
}
