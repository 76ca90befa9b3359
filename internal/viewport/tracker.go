package viewport

import "sync"

// ActiveOffset is added to the scroll position before hit-testing sections.
// It approximates the navbar height plus a margin.
const ActiveOffset = 100

// Bounds is the vertical extent of an element in page coordinates
type Bounds struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Contains reports whether y falls in [Top, Top+Height)
func (b Bounds) Contains(y float64) bool {
	return y >= b.Top && y < b.Top+b.Height
}

// Layout supplies on-screen geometry for sections
type Layout interface {
	SectionBounds(s Section) (Bounds, bool)
}

// StaticLayout is a Layout backed by a fixed map
type StaticLayout map[Section]Bounds

// SectionBounds implements Layout
func (l StaticLayout) SectionBounds(s Section) (Bounds, bool) {
	b, ok := l[s]
	return b, ok
}

// Tracker decides which section is active for navbar highlighting
type Tracker struct {
	mu        sync.Mutex
	layout    Layout
	active    Section
	suspended bool
	listeners []func(Section)
}

// NewTracker creates a Tracker starting on the home section
func NewTracker(layout Layout) *Tracker {
	return &Tracker{
		layout: layout,
		active: SectionHome,
	}
}

// SetLayout swaps the geometry source, e.g. after a resize
func (t *Tracker) SetLayout(layout Layout) {
	t.mu.Lock()
	t.layout = layout
	t.mu.Unlock()
}

// OnChange registers a listener called whenever the active section changes
func (t *Tracker) OnChange(fn func(Section)) {
	t.mu.Lock()
	t.listeners = append(t.listeners, fn)
	t.mu.Unlock()
}

// Update recomputes the active section for a scroll position.
// The first section in priority order containing scrollY+ActiveOffset wins;
// if none matches the previous section is kept.
func (t *Tracker) Update(scrollY float64) Section {
	t.mu.Lock()
	if t.suspended || t.layout == nil {
		active := t.active
		t.mu.Unlock()
		return active
	}

	prev := t.active
	if s, ok := Resolve(t.layout, scrollY); ok {
		t.active = s
	}
	active := t.active
	listeners := t.listeners
	t.mu.Unlock()

	if active != prev {
		for _, fn := range listeners {
			fn(active)
		}
	}
	return active
}

// Resolve hit-tests the sections at a scroll position without any state
func Resolve(layout Layout, scrollY float64) (Section, bool) {
	probe := scrollY + ActiveOffset
	for _, s := range Sections {
		b, ok := layout.SectionBounds(s)
		if !ok {
			continue
		}
		if b.Contains(probe) {
			return s, true
		}
	}
	return SectionNone, false
}

// Active returns the tracked section
func (t *Tracker) Active() Section {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Highlighted is what the navbar should show: nothing while suspended
func (t *Tracker) Highlighted() Section {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.suspended {
		return SectionNone
	}
	return t.active
}

// Suspend stops the tracker from reacting to scroll updates
func (t *Tracker) Suspend() {
	t.mu.Lock()
	t.suspended = true
	t.mu.Unlock()
}

// Resume re-enables scroll updates
func (t *Tracker) Resume() {
	t.mu.Lock()
	t.suspended = false
	t.mu.Unlock()
}

// Suspended reports whether updates are ignored
func (t *Tracker) Suspended() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.suspended
}
