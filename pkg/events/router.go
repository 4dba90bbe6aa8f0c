package events

// RouterState is the minimal surface the Router's default bindings need
// from the lifecycle's AppState, kept here (rather than importing the
// lifecycle package) to avoid a dependency cycle; events is a leaf of
// lifecycle, not the other way around.
type RouterState interface {
	RequestQuit()
	OnResize(cols, rows uint16)
}

// InputHandlerFunc is an input handler's callback. Returning true
// consumes the event and halts further dispatch.
type InputHandlerFunc func(ev InputEvent, state RouterState) bool

// SectionInputFunc is the section-specific fallback hook invoked after
// default bindings, when nothing else consumed the event.
type SectionInputFunc func(ev InputEvent, state RouterState) bool

// Router dispatches in three stages: registered input handlers in
// priority order, then default bindings, then the section's input
// hook.
type Router struct {
	handlers *Registry[InputHandlerFunc]
	section  SectionInputFunc
}

// NewRouter returns a Router with no handlers and no section hook.
func NewRouter() *Router {
	return &Router{handlers: NewRegistry[InputHandlerFunc]()}
}

// RegisterInput adds a named, priority-ordered input handler.
func (r *Router) RegisterInput(name string, priority int32, fn InputHandlerFunc) error {
	return r.handlers.Register(name, priority, fn)
}

// Unregister removes a named input handler.
func (r *Router) Unregister(name string) {
	r.handlers.Unregister(name)
}

// Clear removes every registered input handler (not the section hook).
func (r *Router) Clear() {
	r.handlers.Clear()
}

// SetSectionHook installs the section-specific fallback handler.
func (r *Router) SetSectionHook(fn SectionInputFunc) {
	r.section = fn
}

// Dispatch runs the three-stage pipeline for one event. Returns true
// if the event was consumed at any stage.
func (r *Router) Dispatch(ev InputEvent, state RouterState) bool {
	consumed := false
	r.handlers.Each(func(_ string, fn InputHandlerFunc) {
		if consumed {
			return
		}
		if fn(ev, state) {
			consumed = true
		}
	})
	if consumed {
		return true
	}

	if r.runDefaultBindings(ev, state) {
		return true
	}

	if r.section != nil {
		return r.section(ev, state)
	}
	return false
}

// runDefaultBindings runs when no registered handler consumed the
// event: Q / Ctrl-C requests quit, resize updates term dimensions and
// resizes layers (the latter is
// delegated to RouterState.OnResize, which the lifecycle's AppState
// implements by calling layer.Stack.ResizeAll).
func (r *Router) runDefaultBindings(ev InputEvent, state RouterState) bool {
	switch ev.Kind {
	case KindKey:
		if ev.Action != Press {
			return false
		}
		const keyQ = uint32('q')
		const keyCtrlC = 0x03
		if ev.KeyCode == keyQ || ev.KeyCode == keyCtrlC {
			state.RequestQuit()
			return true
		}
	case KindResize:
		state.OnResize(ev.Cols, ev.Rows)
		return true
	}
	return false
}
