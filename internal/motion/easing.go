package motion

import (
	"math"
	"strconv"
)

// Easing maps linear progress in [0,1] onto eased progress
type Easing interface {
	At(p float64) float64
}

// EasingFunc adapts a plain function to Easing
type EasingFunc func(float64) float64

// At implements Easing
func (f EasingFunc) At(p float64) float64 { return f(p) }

// Linear is the identity easing
var Linear Easing = EasingFunc(func(p float64) float64 { return clamp01(p) })

// EaseOutExpo decelerates exponentially and lands exactly on 1
var EaseOutExpo Easing = EasingFunc(func(p float64) float64 {
	if p >= 1 {
		return 1
	}
	if p <= 0 {
		return 0
	}
	return 1 - math.Pow(2, -10*p)
})

// CubicBezier is a CSS cubic-bezier(x1, y1, x2, y2) timing function
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

var (
	// RevealEasing is the curve every reveal transition uses
	RevealEasing = CubicBezier{0.22, 1, 0.36, 1}
	// BouncyEasing overshoots slightly before settling; used by progress bars
	BouncyEasing = CubicBezier{0.34, 1.56, 0.64, 1}
)

const (
	bezierEpsilon    = 1e-7
	newtonIterations = 8
)

// At returns the curve's y for time x. The endpoints are exact.
func (b CubicBezier) At(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return b.sampleY(b.solveT(x))
}

// polynomial coefficients for one axis of a curve anchored at 0 and 1
func coefficients(p1, p2 float64) (a, bb, c float64) {
	c = 3 * p1
	bb = 3*(p2-p1) - c
	a = 1 - c - bb
	return a, bb, c
}

func (b CubicBezier) sampleX(t float64) float64 {
	a, bb, c := coefficients(b.X1, b.X2)
	return ((a*t+bb)*t + c) * t
}

func (b CubicBezier) sampleY(t float64) float64 {
	a, bb, c := coefficients(b.Y1, b.Y2)
	return ((a*t+bb)*t + c) * t
}

func (b CubicBezier) sampleDX(t float64) float64 {
	a, bb, c := coefficients(b.X1, b.X2)
	return (3*a*t+2*bb)*t + c
}

// solveT inverts x(t): Newton's method first, bisection if it stalls
func (b CubicBezier) solveT(x float64) float64 {
	t := x
	for i := 0; i < newtonIterations; i++ {
		err := b.sampleX(t) - x
		if math.Abs(err) < bezierEpsilon {
			return t
		}
		d := b.sampleDX(t)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= err / d
	}

	lo, hi := 0.0, 1.0
	t = x
	for lo < hi {
		v := b.sampleX(t)
		if math.Abs(v-x) < bezierEpsilon {
			return t
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		next := (lo + hi) / 2
		if next == t {
			break
		}
		t = next
	}
	return t
}

// CSS renders the curve as a CSS timing function
func (b CubicBezier) CSS() string {
	return "cubic-bezier(" + ftoa(b.X1) + ", " + ftoa(b.Y1) + ", " + ftoa(b.X2) + ", " + ftoa(b.Y2) + ")"
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
