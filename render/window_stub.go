//go:build !ebiten

package render

import (
	"fmt"
	"time"

	"github.com/sheikhrachel/seedlife/driver"
)

// Window is a placeholder that satisfies the API expected by the GUI build.
type Window struct{}

// NewWindow panics to indicate that the ebiten build tag is required for GUI support.
func NewWindow(Palette, int, int) *Window {
	panic("render.NewWindow requires building with the 'ebiten' tag")
}

// Attach is a no-op placeholder.
func (w *Window) Attach(*driver.Runner, time.Duration) {}

// Render always reports that the GUI build tag is missing.
func (w *Window) Render(driver.Frame) error {
	return fmt.Errorf("render.Window requires building with the 'ebiten' tag")
}
