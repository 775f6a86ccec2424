package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/seedlife/driver"
)

const helpLine = "s start  space stop  r reseed  +/- density  [/] seed size  q quit"

// ScreenRenderer draws frames on a tcell screen. Row 0 holds the status line, the
// grid follows with two columns per cell, and the key help sits below it.
type ScreenRenderer struct {
	screen  tcell.Screen
	palette Palette
	text    tcell.Style
}

func NewScreenRenderer(screen tcell.Screen, palette Palette) *ScreenRenderer {
	return &ScreenRenderer{
		screen:  screen,
		palette: palette,
		text:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
}

// Render draws the frame and shows it
func (r *ScreenRenderer) Render(frame driver.Frame) error {
	r.screen.Clear()
	r.drawText(0, 0, StatusLine(frame))

	g := frame.Grid
	for row := range g.Axis() {
		for col := range g.Axis() {
			style := tcell.StyleDefault.Background(r.palette.Color(g.At(row, col)))
			r.screen.SetContent(col*2, row+1, ' ', nil, style)
			r.screen.SetContent(col*2+1, row+1, ' ', nil, style)
		}
	}

	r.drawText(0, g.Axis()+1, helpLine)
	r.drawText(0, g.Axis()+2, fmt.Sprintf("%.1f gen/sec | avg population %.1f",
		frame.Stats.GenerationsPerSecond, frame.Stats.AveragePopulation))
	r.screen.Show()
	return nil
}

func (r *ScreenRenderer) drawText(x, y int, s string) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, r.text)
	}
}
