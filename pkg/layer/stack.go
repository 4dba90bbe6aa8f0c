package layer

import (
	"errors"
	"sort"

	"github.com/maddestlabs/tstorie/pkg/cellbuf"
)

// ErrDuplicateID is returned by AddLayer when id already exists in the
// stack.
var ErrDuplicateID = errors.New("layer: duplicate layer id")

// ErrUnknownLayer is returned by operations that require an existing,
// addressable layer and were given an id or index that doesn't resolve.
var ErrUnknownLayer = errors.New("layer: unknown layer")

// Stack is an ordered set of Layers plus a lazily-rebuilt id→index
// cache.
//
// The cache tracks positions in the *sorted* order: an integer index
// passed to Resolve means current sorted z-position, not creation
// order.
type Stack struct {
	layers     []*Layer
	indexCache map[string]int
	cacheValid bool
	nextOrder  int
}

// New returns an empty Stack.
func New() *Stack {
	return &Stack{indexCache: make(map[string]int)}
}

// AddLayer creates and inserts a new layer at z, sized to (width, height).
func (s *Stack) AddLayer(id string, z int32, width, height int) (*Layer, error) {
	if _, ok := s.byIDLinear(id); ok {
		return nil, ErrDuplicateID
	}
	l := &Layer{
		ID:      id,
		Z:       z,
		Visible: true,
		Buffer:  cellbuf.New(width, height),
		Effects: DefaultEffects(),
		order:   s.nextOrder,
	}
	s.nextOrder++
	s.layers = append(s.layers, l)
	s.invalidate()
	return l, nil
}

// RemoveLayer deletes the layer with the given id.
func (s *Stack) RemoveLayer(id string) error {
	for i, l := range s.layers {
		if l.ID == id {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			s.invalidate()
			return nil
		}
	}
	return ErrUnknownLayer
}

// SetZ changes a layer's z-order key.
func (s *Stack) SetZ(id string, z int32) error {
	l, ok := s.byIDLinear(id)
	if !ok {
		return ErrUnknownLayer
	}
	l.Z = z
	s.invalidate()
	return nil
}

// SetVisible toggles a layer's visibility.
func (s *Stack) SetVisible(id string, visible bool) error {
	l, ok := s.byIDLinear(id)
	if !ok {
		return ErrUnknownLayer
	}
	l.Visible = visible
	return nil
}

// GetByID returns the layer with the given id, if any.
func (s *Stack) GetByID(id string) (*Layer, bool) {
	return s.byIDLinear(id)
}

func (s *Stack) byIDLinear(id string) (*Layer, bool) {
	for _, l := range s.layers {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

func (s *Stack) invalidate() {
	s.cacheValid = false
}

// rebuild recomputes the sorted order and the id→index cache over it.
// Sort is stable, so equal-z layers keep insertion order.
func (s *Stack) rebuild() {
	sort.SliceStable(s.layers, func(i, j int) bool {
		return s.layers[i].Z < s.layers[j].Z
	})
	s.indexCache = make(map[string]int, len(s.layers))
	for i, l := range s.layers {
		s.indexCache[l.ID] = i
	}
	s.cacheValid = true
}

// ensureCache rebuilds the cache if it was invalidated since the last
// lookup.
func (s *Stack) ensureCache() {
	if !s.cacheValid {
		s.rebuild()
	}
}

// Resolve accepts either a string layer id or a base-10 non-negative
// integer index and returns the layer's current position in sorted
// z-order. Out-of-range indices and unknown ids both return ok=false;
// callers (script-layer drawing ops) must treat that as a no-op rather
// than an error.
func (s *Stack) Resolve(idOrIndex any) (int, bool) {
	s.ensureCache()
	switch v := idOrIndex.(type) {
	case string:
		idx, ok := s.indexCache[v]
		return idx, ok
	case int:
		if v < 0 || v >= len(s.layers) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// LayerAt returns the layer currently at sorted position idx.
func (s *Stack) LayerAt(idx int) (*Layer, bool) {
	s.ensureCache()
	if idx < 0 || idx >= len(s.layers) {
		return nil, false
	}
	return s.layers[idx], true
}

// Get resolves idOrIndex and returns the corresponding layer, or
// (nil, false) if it doesn't resolve; used by every drawing helper so
// unknown targets degrade to no-ops instead of crashing the frame.
func (s *Stack) Get(idOrIndex any) (*Layer, bool) {
	idx, ok := s.Resolve(idOrIndex)
	if !ok {
		return nil, false
	}
	return s.LayerAt(idx)
}

// IterSorted calls fn for each layer in ascending z-order.
func (s *Stack) IterSorted(fn func(*Layer)) {
	s.ensureCache()
	for _, l := range s.layers {
		fn(l)
	}
}

// Len returns the number of layers in the stack.
func (s *Stack) Len() int {
	return len(s.layers)
}

// ResizeAll resizes every layer's buffer, used when the terminal
// resizes.
func (s *Stack) ResizeAll(width, height int) {
	for _, l := range s.layers {
		l.Buffer.Resize(width, height)
	}
}
