package events

import (
	"errors"
	"sort"
)

// ErrDuplicateHandler is returned by Register when name is already
// registered in this registry.
var ErrDuplicateHandler = errors.New("events: duplicate handler name")

// Registry is a named, priority-ordered collection of callbacks shared
// by the update, render, and input handler registries. Ascending
// priority; insertion order breaks ties.
//
// F is the handler's callback signature; InputHandlerFunc for the
// input registry, or a caller-defined func type for update/render.
type Registry[F any] struct {
	entries []entry[F]
	byName  map[string]int
	seq     int
}

type entry[F any] struct {
	name     string
	priority int32
	fn       F
	seq      int
}

// NewRegistry returns an empty Registry.
func NewRegistry[F any]() *Registry[F] {
	return &Registry[F]{byName: make(map[string]int)}
}

// Register adds a named handler at the given priority. Returns
// ErrDuplicateHandler if name is already registered.
func (r *Registry[F]) Register(name string, priority int32, fn F) error {
	if _, ok := r.byName[name]; ok {
		return ErrDuplicateHandler
	}
	e := entry[F]{name: name, priority: priority, fn: fn, seq: r.seq}
	r.seq++
	r.entries = append(r.entries, e)
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].priority != r.entries[j].priority {
			return r.entries[i].priority < r.entries[j].priority
		}
		return r.entries[i].seq < r.entries[j].seq
	})
	r.reindex()
	return nil
}

// Unregister removes the named handler, if present.
func (r *Registry[F]) Unregister(name string) {
	idx, ok := r.byName[name]
	if !ok {
		return
	}
	r.entries = append(r.entries[:idx], r.entries[idx+1:]...)
	r.reindex()
}

// Clear removes every handler, dropping the registry's owned
// callables.
func (r *Registry[F]) Clear() {
	r.entries = nil
	r.byName = make(map[string]int)
}

func (r *Registry[F]) reindex() {
	r.byName = make(map[string]int, len(r.entries))
	for i, e := range r.entries {
		r.byName[e.name] = i
	}
}

// Each calls fn for every registered handler in ascending-priority,
// insertion-order-tiebroken sequence.
func (r *Registry[F]) Each(fn func(name string, handler F)) {
	for _, e := range r.entries {
		fn(e.name, e.fn)
	}
}

// Len returns the number of registered handlers.
func (r *Registry[F]) Len() int {
	return len(r.entries)
}
