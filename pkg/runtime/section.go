package runtime

import (
	"errors"

	"github.com/maddestlabs/tstorie/pkg/animation"
	"github.com/tanema/gween/ease"
)

// ErrUnknownSection is returned when a SectionRef can't be resolved by
// id or index, mirroring layer.Stack.Get's degrade-to-no-op contract
// but surfaced as an error here since section navigation is a
// script-driven call, not a per-frame drawing helper.
var ErrUnknownSection = errors.New("runtime: unknown section")

// sectionTransitionSeconds is the fixed duration SectionManager drives
// its Transition tween over on every Go/Next/Back call.
const sectionTransitionSeconds = 0.35

// SectionRef names one entry in a SectionManager's ordered list.
type SectionRef struct {
	ID    string
	Title string
}

// SectionManager holds the ordered canvas/section list, resolving
// Go/Next/Back the same string-or-index way layer.Stack.Resolve does,
// and driving a single animation.Tween per transition. Transition state
// is explicit here, not hidden in a coroutine.
type SectionManager struct {
	sections   []SectionRef
	current    int
	Transition *animation.Tween
}

// NewSectionManager returns an empty manager with no current section.
func NewSectionManager() *SectionManager {
	return &SectionManager{current: -1}
}

// Add appends ref to the ordered list. The first section added becomes
// current automatically.
func (m *SectionManager) Add(ref SectionRef) {
	m.sections = append(m.sections, ref)
	if m.current == -1 {
		m.current = 0
	}
}

// Sections returns the ordered list of registered sections.
func (m *SectionManager) Sections() []SectionRef {
	return m.sections
}

// Current returns the active section, or (zero, false) if none is set.
func (m *SectionManager) Current() (SectionRef, bool) {
	if m.current < 0 || m.current >= len(m.sections) {
		return SectionRef{}, false
	}
	return m.sections[m.current], true
}

// CurrentIndex returns the active section's position in the ordered
// list (the order sections were added).
func (m *SectionManager) CurrentIndex() int {
	return m.current
}

func (m *SectionManager) resolve(idOrIndex any) (int, bool) {
	switch v := idOrIndex.(type) {
	case int:
		if v < 0 || v >= len(m.sections) {
			return 0, false
		}
		return v, true
	case string:
		for i, s := range m.sections {
			if s.ID == v {
				return i, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

// Go jumps to the section named or indexed by idOrIndex, starting a new
// Transition tween. Returns ErrUnknownSection if it doesn't resolve.
func (m *SectionManager) Go(idOrIndex any) error {
	idx, ok := m.resolve(idOrIndex)
	if !ok {
		return ErrUnknownSection
	}
	m.transitionTo(idx)
	return nil
}

// Next advances to the following section, wrapping past the end.
func (m *SectionManager) Next() error {
	if len(m.sections) == 0 {
		return ErrUnknownSection
	}
	m.transitionTo((m.current + 1) % len(m.sections))
	return nil
}

// Back returns to the preceding section, wrapping before the start.
func (m *SectionManager) Back() error {
	if len(m.sections) == 0 {
		return ErrUnknownSection
	}
	idx := m.current - 1
	if idx < 0 {
		idx = len(m.sections) - 1
	}
	m.transitionTo(idx)
	return nil
}

func (m *SectionManager) transitionTo(idx int) {
	m.current = idx
	m.Transition = animation.NewTween(0, 1, sectionTransitionSeconds, ease.InOutCubic)
}
