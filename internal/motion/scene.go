package motion

import "sync"

// Rect is the vertical extent of an element in page coordinates
type Rect struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Target is anything an Observer can watch
type Target interface {
	Rect() Rect
}

// Box is a Target whose geometry can be updated after layout changes
type Box struct {
	mu   sync.RWMutex
	ID   string
	rect Rect
}

// NewBox creates a Box at the given position
func NewBox(id string, r Rect) *Box {
	return &Box{ID: id, rect: r}
}

// Rect implements Target
func (b *Box) Rect() Rect {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rect
}

// SetRect moves the box. Call Scene.Refresh afterwards.
func (b *Box) SetRect(r Rect) {
	b.mu.Lock()
	b.rect = r
	b.mu.Unlock()
}

// Viewport is the visible window onto the page
type Viewport struct {
	ScrollY float64 `json:"scrollY"`
	Height  float64 `json:"height"`
}

// ObserverOptions configure when an Observer considers a target visible
type ObserverOptions struct {
	// Threshold is the fraction of the target that must be inside the root
	Threshold float64
	// RootMarginBottom grows (positive) or shrinks (negative) the root's
	// bottom edge in pixels
	RootMarginBottom float64
}

// Entry reports a target's visibility to an Observer callback
type Entry struct {
	Target         Target
	IsIntersecting bool
	Ratio          float64
}

// ObserverFunc receives entries for targets whose visibility changed
type ObserverFunc func(entries []Entry, o *Observer)

// Scene holds the viewport and every registered Observer.
// Scroll and resize events re-evaluate all observers.
type Scene struct {
	mu        sync.Mutex
	viewport  Viewport
	observers map[*Observer]struct{}
}

// NewScene creates a Scene with an initial viewport
func NewScene(vp Viewport) *Scene {
	return &Scene{
		viewport:  vp,
		observers: make(map[*Observer]struct{}),
	}
}

// Viewport returns the current viewport
func (s *Scene) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// ScrollTo moves the viewport and notifies observers
func (s *Scene) ScrollTo(y float64) {
	s.mu.Lock()
	s.viewport.ScrollY = y
	s.mu.Unlock()
	s.Refresh()
}

// Resize changes the viewport height and notifies observers
func (s *Scene) Resize(height float64) {
	s.mu.Lock()
	s.viewport.Height = height
	s.mu.Unlock()
	s.Refresh()
}

// Refresh re-evaluates every observer against the current viewport
func (s *Scene) Refresh() {
	s.mu.Lock()
	vp := s.viewport
	observers := make([]*Observer, 0, len(s.observers))
	for o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.Unlock()

	for _, o := range observers {
		o.evaluate(vp, nil)
	}
}

// Observers returns the number of connected observers
func (s *Scene) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// NewObserver registers an Observer on the scene. It stays registered until
// Disconnect is called; owners must disconnect on every exit path.
func (s *Scene) NewObserver(opts ObserverOptions, fn ObserverFunc) *Observer {
	o := &Observer{
		scene:   s,
		opts:    opts,
		fn:      fn,
		targets: make(map[Target]*targetState),
	}
	s.mu.Lock()
	s.observers[o] = struct{}{}
	s.mu.Unlock()
	return o
}

func (s *Scene) remove(o *Observer) {
	s.mu.Lock()
	delete(s.observers, o)
	s.mu.Unlock()
}

type targetState struct {
	reported     bool
	intersecting bool
}

// Observer watches a set of targets and reports threshold crossings
type Observer struct {
	scene *Scene
	opts  ObserverOptions
	fn    ObserverFunc

	mu      sync.Mutex
	targets map[Target]*targetState
	closed  bool
}

// Observe starts watching a target. The callback receives an initial entry
// for it straight away.
func (o *Observer) Observe(t Target) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	if _, ok := o.targets[t]; !ok {
		o.targets[t] = &targetState{}
	}
	o.mu.Unlock()

	o.evaluate(o.scene.Viewport(), t)
}

// Unobserve stops watching a target. Unknown targets are ignored.
func (o *Observer) Unobserve(t Target) {
	o.mu.Lock()
	delete(o.targets, t)
	o.mu.Unlock()
}

// Disconnect stops watching everything and deregisters from the scene.
// It is safe to call more than once.
func (o *Observer) Disconnect() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.targets = make(map[Target]*targetState)
	o.mu.Unlock()

	o.scene.remove(o)
}

// Connected reports whether Disconnect has not been called yet
func (o *Observer) Connected() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return !o.closed
}

// evaluate computes entries for all targets (or just one) and invokes the
// callback outside the lock so it may Unobserve or Disconnect.
func (o *Observer) evaluate(vp Viewport, only Target) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	var entries []Entry
	for t, st := range o.targets {
		if only != nil && t != only {
			continue
		}
		ratio := IntersectionRatio(vp, t.Rect(), o.opts.RootMarginBottom)
		in := isVisible(ratio, o.opts.Threshold)
		if st.reported && st.intersecting == in {
			continue
		}
		st.reported = true
		st.intersecting = in
		entries = append(entries, Entry{Target: t, IsIntersecting: in, Ratio: ratio})
	}
	o.mu.Unlock()

	if len(entries) > 0 && o.fn != nil {
		o.fn(entries, o)
	}
}

func isVisible(ratio, threshold float64) bool {
	if threshold <= 0 {
		return ratio > 0
	}
	return ratio >= threshold
}

// IntersectionRatio returns the fraction of r inside the viewport after the
// root's bottom edge is adjusted by marginBottom.
func IntersectionRatio(vp Viewport, r Rect, marginBottom float64) float64 {
	rootTop := vp.ScrollY
	rootBottom := vp.ScrollY + vp.Height + marginBottom
	if rootBottom <= rootTop {
		return 0
	}

	if r.Height <= 0 {
		if r.Top >= rootTop && r.Top <= rootBottom {
			return 1
		}
		return 0
	}

	overlap := min(r.Top+r.Height, rootBottom) - max(r.Top, rootTop)
	if overlap <= 0 {
		return 0
	}
	return clamp01(overlap / r.Height)
}

// OnceVisible calls fn the first time target crosses threshold and then
// disconnects. The returned Observer must still be disconnected by the owner
// if the target goes away before it ever becomes visible.
func OnceVisible(s *Scene, t Target, threshold float64, fn func()) *Observer {
	var once sync.Once
	o := s.NewObserver(ObserverOptions{Threshold: threshold}, func(entries []Entry, o *Observer) {
		for _, e := range entries {
			if e.IsIntersecting {
				o.Disconnect()
				once.Do(fn)
				return
			}
		}
	})
	o.Observe(t)
	return o
}
