//go:build ebiten

package render

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/sheikhrachel/seedlife/driver"
	"github.com/sheikhrachel/seedlife/model"
	"github.com/sheikhrachel/seedlife/utils"
)

var windowKeys = map[ebiten.Key]driver.Action{
	ebiten.KeyS:            driver.ActionStart,
	ebiten.KeyEnter:        driver.ActionStart,
	ebiten.KeySpace:        driver.ActionToggle,
	ebiten.KeyR:            driver.ActionSeed,
	ebiten.KeyEqual:        driver.ActionDensityUp,
	ebiten.KeyMinus:        driver.ActionDensityDown,
	ebiten.KeyBracketRight: driver.ActionSeedSizeUp,
	ebiten.KeyBracketLeft:  driver.ActionSeedSizeDown,
}

// Window adapts a driver.Runner to the ebiten.Game interface and doubles as its
// renderer.
type Window struct {
	runner  *driver.Runner
	timer   *utils.FixedStep
	palette Palette
	scale   int
	axis    int

	mu    sync.Mutex
	grid  model.Grid
	dirty bool

	img    *ebiten.Image
	pixels []byte
}

// NewWindow creates a window for an axis x axis grid drawn at scale pixels per cell
func NewWindow(palette Palette, axis, scale int) *Window {
	if scale <= 0 {
		scale = 1
	}
	return &Window{
		palette: palette,
		scale:   scale,
		axis:    axis,
		img:     ebiten.NewImage(axis, axis),
		pixels:  make([]byte, axis*axis*4),
	}
}

// Attach connects the runner whose generations are due every interval
func (w *Window) Attach(runner *driver.Runner, interval time.Duration) {
	w.runner = runner
	w.timer = utils.NewFixedStep(interval)
}

// Render stores the latest grid for the next Draw
func (w *Window) Render(frame driver.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.grid = frame.Grid
	w.dirty = true
	return nil
}

// Update handles input and advances the simulation when a generation is due.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, action := range windowKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := w.runner.Dispatch(action); err != nil {
				return err
			}
		}
	}
	if w.timer.ShouldStep() {
		if _, err := w.runner.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Draw paints the latest grid scaled to the window.
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	if w.dirty {
		w.fillPixels()
		w.img.WritePixels(w.pixels)
		w.dirty = false
	}
	w.mu.Unlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)
}

// Layout returns the logical screen size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.axis * w.scale, w.axis * w.scale
}

func (w *Window) fillPixels() {
	for row := range w.axis {
		for col := range w.axis {
			c := w.palette.RGBA(w.grid.At(row, col))
			base := (row*w.axis + col) * 4
			w.pixels[base+0] = c.R
			w.pixels[base+1] = c.G
			w.pixels[base+2] = c.B
			w.pixels[base+3] = c.A
		}
	}
}
