package motion

import (
	"sync"
	"time"
)

const (
	ProgressThreshold = 0.1
	ProgressDuration  = 1500 * time.Millisecond
	// ProgressStagger delays each bar relative to the one before it
	ProgressStagger = 100 * time.Millisecond
)

// ProgressBar grows from 0% to its percentage the first time it is seen
type ProgressBar struct {
	percentage float64
	index      int
	clock      Clock
	obs        *Observer

	mu        sync.Mutex
	triggered bool
	firedAt   time.Time
	listeners []func()
}

// NewProgressBar watches target and arms a single-shot width transition.
// Close must be called when the bar goes away.
func NewProgressBar(s *Scene, target Target, percentage, index int, clock Clock) *ProgressBar {
	if clock == nil {
		clock = RealClock()
	}
	b := &ProgressBar{
		percentage: float64(percentage),
		index:      index,
		clock:      clock,
	}
	b.obs = OnceVisible(s, target, ProgressThreshold, b.fire)
	return b
}

func (b *ProgressBar) fire() {
	b.mu.Lock()
	if b.triggered {
		b.mu.Unlock()
		return
	}
	b.triggered = true
	b.firedAt = b.clock.Now()
	listeners := b.listeners
	b.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// OnTrigger registers a listener for the single visibility trigger
func (b *ProgressBar) OnTrigger(fn func()) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

// Delay is the stagger before the bar starts growing
func (b *ProgressBar) Delay() time.Duration {
	return time.Duration(b.index) * ProgressStagger
}

// Triggered reports whether the bar has been seen
func (b *ProgressBar) Triggered() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.triggered
}

// TargetWidth is the width, in percent, the bar settles at once triggered
func (b *ProgressBar) TargetWidth() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.triggered {
		return 0
	}
	return b.percentage
}

// WidthAt is the width in percent at time now. The bouncy curve may briefly
// overshoot the target.
func (b *ProgressBar) WidthAt(now time.Time) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.triggered {
		return 0
	}
	elapsed := now.Sub(b.firedAt) - b.Delay()
	if elapsed <= 0 {
		return 0
	}
	p := clamp01(float64(elapsed) / float64(ProgressDuration))
	return b.percentage * BouncyEasing.At(p)
}

// Transition returns the CSS transition parameters for the bar
func (b *ProgressBar) Transition() Transition {
	return Transition{
		Duration: ProgressDuration,
		Delay:    b.Delay(),
		Easing:   BouncyEasing,
	}
}

// Close detaches the observer if it has not fired yet
func (b *ProgressBar) Close() {
	b.obs.Disconnect()
}
