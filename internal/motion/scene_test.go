package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectionRatio(t *testing.T) {
	vp := Viewport{ScrollY: 1000, Height: 800}

	tests := []struct {
		name   string
		rect   Rect
		margin float64
		want   float64
	}{
		{"fully inside", Rect{Top: 1200, Height: 100}, 0, 1},
		{"fully below", Rect{Top: 1900, Height: 100}, 0, 0},
		{"fully above", Rect{Top: 500, Height: 100}, 0, 0},
		{"half below the fold", Rect{Top: 1750, Height: 100}, 0, 0.5},
		{"half hidden by margin", Rect{Top: 1700, Height: 100}, -50, 0.5},
		{"hidden entirely by margin", Rect{Top: 1760, Height: 40}, -50, 0},
		{"taller than viewport", Rect{Top: 900, Height: 1600}, 0, 0.5},
		{"zero height inside", Rect{Top: 1100}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, IntersectionRatio(vp, tt.rect, tt.margin), 1e-9)
		})
	}
}

func TestObserver_InitialEntryAndCrossings(t *testing.T) {
	scene := NewScene(Viewport{ScrollY: 0, Height: 600})
	box := NewBox("card", Rect{Top: 1000, Height: 200})

	var got []bool
	o := scene.NewObserver(ObserverOptions{Threshold: 0.5}, func(entries []Entry, _ *Observer) {
		for _, e := range entries {
			got = append(got, e.IsIntersecting)
		}
	})
	o.Observe(box)
	require.Equal(t, []bool{false}, got, "initial entry")

	scene.ScrollTo(500) // 100px of 200 visible: exactly at threshold
	scene.ScrollTo(550)
	scene.ScrollTo(2000)
	scene.ScrollTo(2100)

	assert.Equal(t, []bool{false, true, false}, got)
}

func TestObserver_DisconnectIsIdempotent(t *testing.T) {
	scene := NewScene(Viewport{Height: 600})
	calls := 0
	o := scene.NewObserver(ObserverOptions{}, func([]Entry, *Observer) { calls++ })
	o.Observe(NewBox("a", Rect{Top: 100, Height: 10}))
	require.Equal(t, 1, scene.Observers())

	o.Disconnect()
	o.Disconnect()
	assert.Equal(t, 0, scene.Observers())
	assert.False(t, o.Connected())

	o.Observe(NewBox("b", Rect{Top: 100, Height: 10}))
	scene.ScrollTo(50)
	assert.Equal(t, 1, calls, "no callbacks after disconnect")
}

func TestOnceVisible_FiresExactlyOnce(t *testing.T) {
	scene := NewScene(Viewport{Height: 500})
	box := NewBox("bar", Rect{Top: 800, Height: 20})

	fired := 0
	o := OnceVisible(scene, box, 0.1, func() { fired++ })
	assert.Equal(t, 0, fired)

	scene.ScrollTo(400)
	scene.ScrollTo(0)
	scene.ScrollTo(400)
	box.SetRect(Rect{Top: 820, Height: 20})
	scene.Refresh()

	assert.Equal(t, 1, fired)
	assert.False(t, o.Connected())
	assert.Equal(t, 0, scene.Observers())
}

func TestOnceVisible_AlreadyVisible(t *testing.T) {
	scene := NewScene(Viewport{Height: 500})
	fired := 0
	OnceVisible(scene, NewBox("x", Rect{Top: 10, Height: 10}), 0.1, func() { fired++ })
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, scene.Observers())
}
