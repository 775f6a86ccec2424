package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sheikhrachel/seedlife/driver"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearSequence = "\033[H\033[2J"
)

// TextRenderer writes frames as plain text, two characters per cell
type TextRenderer struct {
	w     io.Writer
	clear bool
}

func NewTextRenderer(w io.Writer, clear bool) *TextRenderer {
	return &TextRenderer{w: w, clear: clear}
}

// Render writes the status line followed by the grid
func (r *TextRenderer) Render(frame driver.Frame) error {
	bw := bufio.NewWriter(r.w)
	if r.clear {
		bw.WriteString(clearSequence)
	}
	bw.WriteString(StatusLine(frame))
	bw.WriteByte('\n')

	g := frame.Grid
	for row := range g.Axis() {
		for col := range g.Axis() {
			if g.At(row, col) > 0 {
				bw.WriteString(gridPosBlock)
			} else {
				bw.WriteString(gridPosEmpty)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// StatusLine summarizes a frame on a single line
func StatusLine(frame driver.Frame) string {
	status := frame.State.String()
	if frame.Reason != driver.StopNone {
		status = fmt.Sprintf("%s (%s)", status, frame.Reason)
	}
	return fmt.Sprintf("Gen: %d | Living: %d | Changed: %d | Density: %.2f | Seed size: %d | %s",
		frame.Generation, frame.Grid.Population(), frame.Changed,
		frame.Config.LiveProbability, frame.Config.SeedSize, status)
}
