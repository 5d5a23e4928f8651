package sapling

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// fpsRefreshInterval is how often the FPS readout text changes, in seconds.
const fpsRefreshInterval = 0.5

// FPSCounter is an Updater that writes the measured frame and tick rates
// into a Label every half second.
type FPSCounter struct {
	Label   *Label
	sample  func() (fps, tps float64)
	elapsed float64
}

// Update implements Updater.
func (f *FPSCounter) Update(_ *GameObject, dt float64) {
	f.elapsed += dt
	if f.elapsed < fpsRefreshInterval && f.Label.Text != "" {
		return
	}
	f.elapsed = 0
	fps, tps := f.sample()
	f.Label.Text = fmt.Sprintf("FPS: %.1f TPS: %.1f", fps, tps)
}

// NewFPSCounter creates an object that displays e's FPS and TPS near the
// top-left corner. It draws above everything else in its scene. Add it to
// a scene like any other object.
func NewFPSCounter(e *Engine) *GameObject {
	return newFPSCounter(nil, func() (float64, float64) {
		return e.FPS(), ebiten.ActualTPS()
	})
}

func newFPSCounter(h *Hierarchy, sample func() (float64, float64)) *GameObject {
	obj := NewGameObject("fps_counter", h)
	obj.ZOrder = math.MaxInt32
	obj.SetPosition(Vec(70, 12))

	label := NewLabel("")
	obj.AddComponent(&FPSCounter{Label: label, sample: sample})
	obj.AddComponent(label)
	return obj
}
