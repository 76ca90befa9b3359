package motion

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DefaultCounterDuration  = 2000 * time.Millisecond
	DefaultCounterThreshold = 0.1
	// FrameInterval approximates one display refresh at 60Hz
	FrameInterval = 16 * time.Millisecond
)

// CounterValue is a display figure split into its number and trailing text
type CounterValue struct {
	Magnitude int    `json:"magnitude"`
	Suffix    string `json:"suffix"`
}

// String renders the full figure, e.g. "20+"
func (v CounterValue) String() string {
	return strconv.Itoa(v.Magnitude) + v.Suffix
}

// ParseCounterValue splits a string or number into magnitude and suffix.
// For strings every non-digit is dropped from the magnitude and kept, in
// order, as the suffix ("20+" is 20 and "+"). Numbers have no suffix.
func ParseCounterValue(v any) CounterValue {
	switch n := v.(type) {
	case int:
		return CounterValue{Magnitude: n}
	case int32:
		return CounterValue{Magnitude: int(n)}
	case int64:
		return CounterValue{Magnitude: int(n)}
	case float64:
		return CounterValue{Magnitude: int(n)}
	case float32:
		return CounterValue{Magnitude: int(n)}
	case string:
		return parseCounterString(n)
	case fmt.Stringer:
		return parseCounterString(n.String())
	default:
		return parseCounterString(fmt.Sprint(v))
	}
}

func parseCounterString(s string) CounterValue {
	var digits, suffix strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		} else {
			suffix.WriteRune(r)
		}
	}
	mag, err := strconv.Atoi(digits.String())
	if err != nil {
		mag = 0
	}
	return CounterValue{Magnitude: mag, Suffix: suffix.String()}
}

// CounterFrame is the number shown at a given linear progress.
// Progress is clamped to [0,1] and the final frame is exactly target.
func CounterFrame(target int, progress float64) int {
	p := clamp01(progress)
	if p >= 1 {
		return target
	}
	return int(math.Floor(float64(target) * EaseOutExpo.At(p)))
}

// Counter animates a figure from 0 up to its target once started
type Counter struct {
	value    CounterValue
	duration time.Duration
	clock    Clock

	mu      sync.Mutex
	started bool
	startAt time.Time
	display int
	done    bool
}

// NewCounter creates an idle counter. A non-positive duration uses the default.
func NewCounter(value CounterValue, duration time.Duration, clock Clock) *Counter {
	if duration <= 0 {
		duration = DefaultCounterDuration
	}
	if clock == nil {
		clock = RealClock()
	}
	return &Counter{value: value, duration: duration, clock: clock}
}

// Start begins the animation. Later calls are ignored.
func (c *Counter) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return false
	}
	c.started = true
	c.startAt = c.clock.Now()
	return true
}

// Step advances the counter to the clock's current time
func (c *Counter) Step() (display int, done bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || c.done {
		return c.display, c.done
	}

	progress := float64(c.clock.Now().Sub(c.startAt)) / float64(c.duration)
	next := CounterFrame(c.value.Magnitude, progress)
	// frame jitter can never move the display backwards
	if next > c.display || progress >= 1 {
		c.display = next
	}
	if progress >= 1 {
		c.done = true
	}
	return c.display, c.done
}

// Text is the current display, suffix included
func (c *Counter) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strconv.Itoa(c.display) + c.value.Suffix
}

// Done reports whether the final frame has been shown
func (c *Counter) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Run starts the counter and renders one frame per tick until the target is
// reached or ctx ends. The ticker is stopped on every return path.
func (c *Counter) Run(ctx context.Context, interval time.Duration, render func(text string)) error {
	if interval <= 0 {
		interval = FrameInterval
	}
	c.Start()

	_, done := c.Step()
	render(c.Text())
	if done {
		return nil
	}

	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			_, done := c.Step()
			render(c.Text())
			if done {
				return nil
			}
		}
	}
}
