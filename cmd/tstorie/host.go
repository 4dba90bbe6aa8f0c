package main

import (
	"github.com/maddestlabs/tstorie/pkg/cellbuf"
	"github.com/maddestlabs/tstorie/pkg/events"
	"github.com/maddestlabs/tstorie/pkg/lifecycle"
	"github.com/maddestlabs/tstorie/pkg/runtime"
)

// welcomeHost is the ScriptHost run when no document is wired to a real
// script VM. It proves the frame loop, section
// navigation, and input routing end to end with a single static
// section rather than leaving cmd/tstorie's RunE empty.
type welcomeHost struct {
	documentPath string
	titleStyle   cellbuf.Style
	bodyStyle    cellbuf.Style
}

func newWelcomeHost(documentPath string) *welcomeHost {
	return &welcomeHost{
		documentPath: documentPath,
		titleStyle:   cellbuf.Style{FgR: 135, FgG: 170, FgB: 255, Bold: true},
		bodyStyle:    cellbuf.Style{FgR: 200, FgG: 200, FgB: 200},
	}
}

func (h *welcomeHost) Init(rt *runtime.Runtime) error {
	rt.Sections.Add(runtime.SectionRef{ID: "welcome", Title: "Welcome"})
	return nil
}

func (h *welcomeHost) Update(rt *runtime.Runtime, dtSeconds float64) error {
	if tw := rt.Sections.Transition; tw != nil && !tw.Done {
		tw.Update(float32(dtSeconds))
	}
	return nil
}

func (h *welcomeHost) Render(rt *runtime.Runtime) error {
	state := rt.State()
	if state == nil || state.Layers == nil {
		return nil
	}
	state.Layers.Clear(lifecycle.DefaultLayerID, state.ThemeBg)
	state.Layers.DrawText(lifecycle.DefaultLayerID, 2, 1, "tstorie", h.titleStyle)
	msg := "no document wired; press q to quit"
	if h.documentPath != "" {
		msg = "document: " + h.documentPath + " (no script engine attached)"
	}
	state.Layers.DrawText(lifecycle.DefaultLayerID, 2, 3, msg, h.bodyStyle)
	return nil
}

func (h *welcomeHost) HandleInput(rt *runtime.Runtime, ev events.InputEvent) bool {
	return false
}

func (h *welcomeHost) Teardown(rt *runtime.Runtime) {}

var _ runtime.ScriptHost = (*welcomeHost)(nil)
