package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// Palette maps cell values to colors. Values without an entry fall back to the alive
// color when positive and the dead color otherwise.
type Palette struct {
	colors map[uint8]tcell.Color
}

// DefaultPalette returns green dead cells and charcoal live cells
func DefaultPalette() Palette {
	return Palette{colors: map[uint8]tcell.Color{
		0: tcell.NewHexColor(0x26e132),
		1: tcell.NewHexColor(0x403a3a),
	}}
}

// ParsePalette builds a palette from value -> color strings. Colors are "#rrggbb",
// "#rrggbbaa" (alpha ignored), a named color, or "transparent". Values missing from
// entries keep their default.
func ParsePalette(entries map[string]string) (Palette, error) {
	p := DefaultPalette()
	for key, value := range entries {
		v, err := strconv.ParseUint(strings.TrimSpace(key), 10, 8)
		if err != nil {
			return p, errors.Wrapf(err, "[ParsePalette] invalid cell value %q", key)
		}
		c, err := parseColor(value)
		if err != nil {
			return p, err
		}
		p.colors[uint8(v)] = c
	}
	return p, nil
}

func parseColor(value string) (tcell.Color, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	if name == "transparent" || name == "default" {
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(name, "#") && len(name) == 9 {
		name = name[:7]
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return c, errors.Errorf("[ParsePalette] unknown color %q", value)
	}
	return c, nil
}

// Color returns the terminal color for a cell value
func (p Palette) Color(v uint8) tcell.Color {
	if c, ok := p.colors[v]; ok {
		return c
	}
	if v > 0 {
		return p.colors[1]
	}
	return p.colors[0]
}

// RGBA returns the pixel color for a cell value; transparent entries have zero alpha
func (p Palette) RGBA(v uint8) color.RGBA {
	c := p.Color(v)
	if c == tcell.ColorDefault {
		return color.RGBA{}
	}
	r, g, b := c.RGB()
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}
