package motion

import (
	"strconv"
	"sync"
	"time"
)

// Effect names a reveal entrance
type Effect string

const (
	EffectSlideUp Effect = "slide-up"
	EffectScale   Effect = "scale"
	EffectFade    Effect = "fade"
)

const (
	DefaultRevealDuration  = 800 * time.Millisecond
	DefaultRevealThreshold = 0.15
	// RevealRootMargin pulls the trigger line 50px above the viewport bottom
	RevealRootMargin = -50
)

// Style is the animatable state of a revealed element
type Style struct {
	Opacity       float64 `json:"opacity"`
	TranslateY    float64 `json:"translateY"` // px
	Scale         float64 `json:"scale"`
	PointerEvents bool    `json:"pointerEvents"`
}

// InitialStyle is where an element starts before it is revealed
func InitialStyle(e Effect) Style {
	switch e {
	case EffectScale:
		return Style{Opacity: 0, TranslateY: 16, Scale: 0.95}
	case EffectFade:
		return Style{Opacity: 0, Scale: 1}
	default:
		return Style{Opacity: 0, TranslateY: 32, Scale: 1}
	}
}

// RestingStyle is where an element ends up once revealed
func RestingStyle(Effect) Style {
	return Style{Opacity: 1, TranslateY: 0, Scale: 1, PointerEvents: true}
}

// Transition describes how a style change is animated
type Transition struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   CubicBezier
}

// RevealOptions configure a Reveal. Zero values take the defaults.
type RevealOptions struct {
	Effect    Effect
	Delay     time.Duration
	Duration  time.Duration
	Threshold float64
	// Repeat reverts the element whenever it leaves the viewport.
	// By default a reveal fires once and detaches.
	Repeat bool
}

func (o RevealOptions) withDefaults() RevealOptions {
	if o.Effect == "" {
		o.Effect = EffectSlideUp
	}
	if o.Duration <= 0 {
		o.Duration = DefaultRevealDuration
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultRevealThreshold
	}
	return o
}

// Reveal delays an element's entrance until it scrolls into view
type Reveal struct {
	target Target
	opts   RevealOptions
	clock  Clock
	obs    *Observer

	mu        sync.Mutex
	visible   bool
	from      Style
	changedAt time.Time
	listeners []func(visible bool)
}

// NewReveal attaches a Reveal to target. Close must be called when the
// element goes away.
func NewReveal(s *Scene, target Target, opts RevealOptions, clock Clock) *Reveal {
	opts = opts.withDefaults()
	if clock == nil {
		clock = RealClock()
	}
	r := &Reveal{
		target: target,
		opts:   opts,
		clock:  clock,
		from:   InitialStyle(opts.Effect),
	}
	r.obs = s.NewObserver(ObserverOptions{
		Threshold:        opts.Threshold,
		RootMarginBottom: RevealRootMargin,
	}, r.handle)
	r.obs.Observe(target)
	return r
}

func (r *Reveal) handle(entries []Entry, o *Observer) {
	for _, e := range entries {
		if e.IsIntersecting {
			r.set(true)
			if !r.opts.Repeat {
				o.Unobserve(r.target)
			}
		} else if r.opts.Repeat {
			r.set(false)
		}
	}
}

func (r *Reveal) set(visible bool) {
	r.mu.Lock()
	if r.visible == visible {
		r.mu.Unlock()
		return
	}
	now := r.clock.Now()
	r.from = r.styleAtLocked(now)
	r.visible = visible
	r.changedAt = now
	listeners := r.listeners
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(visible)
	}
}

// OnChange registers a listener for visibility flips
func (r *Reveal) OnChange(fn func(visible bool)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// Visible reports whether the element is in its resting state
func (r *Reveal) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// Style returns the style the element is transitioning towards
func (r *Reveal) Style() Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.targetLocked()
}

// StyleAt interpolates the in-flight transition at time now
func (r *Reveal) StyleAt(now time.Time) Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.styleAtLocked(now)
}

// Transition returns the CSS transition parameters for this reveal
func (r *Reveal) Transition() Transition {
	return Transition{
		Duration: r.opts.Duration,
		Delay:    r.opts.Delay,
		Easing:   RevealEasing,
	}
}

// Options returns the effective options
func (r *Reveal) Options() RevealOptions {
	return r.opts
}

// Close detaches the observer. Safe to call more than once.
func (r *Reveal) Close() {
	r.obs.Disconnect()
}

func (r *Reveal) targetLocked() Style {
	if r.visible {
		return RestingStyle(r.opts.Effect)
	}
	return InitialStyle(r.opts.Effect)
}

func (r *Reveal) styleAtLocked(now time.Time) Style {
	to := r.targetLocked()
	if r.changedAt.IsZero() {
		return to
	}
	elapsed := now.Sub(r.changedAt) - r.opts.Delay
	if elapsed <= 0 {
		return r.from
	}
	p := RevealEasing.At(clamp01(float64(elapsed) / float64(r.opts.Duration)))
	return Style{
		Opacity:       lerp(r.from.Opacity, to.Opacity, p),
		TranslateY:    lerp(r.from.TranslateY, to.TranslateY, p),
		Scale:         lerp(r.from.Scale, to.Scale, p),
		PointerEvents: to.PointerEvents,
	}
}

// CSS renders the style as inline declarations
func (s Style) CSS() string {
	css := "opacity: " + ftoa(s.Opacity) + "; transform: translateY(" + ftoa(s.TranslateY) + "px) scale(" + ftoa(s.Scale) + ");"
	if !s.PointerEvents {
		css += " pointer-events: none;"
	}
	return css
}

// CSS renders the transition shorthand
func (t Transition) CSS() string {
	return "transition: all " + strconv.FormatInt(t.Duration.Milliseconds(), 10) + "ms " +
		t.Easing.CSS() + " " + strconv.FormatInt(t.Delay.Milliseconds(), 10) + "ms;"
}

// TransitionFor returns the transition a reveal built from o would use
func TransitionFor(o RevealOptions) Transition {
	o = o.withDefaults()
	return Transition{Duration: o.Duration, Delay: o.Delay, Easing: RevealEasing}
}
