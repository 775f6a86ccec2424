package model

import (
	"crypto/md5"
	"fmt"
)

const (
	Dead  uint8 = 0
	Alive uint8 = 1
)

// Grid is an immutable square snapshot of cell values stored in row-major order.
// Any value above zero counts as alive; the engine only ever writes Dead or Alive.
type Grid struct {
	axis  int
	cells []uint8
}

// NewGrid returns an all-dead axis x axis grid
func NewGrid(axis int) Grid {
	if axis < 0 {
		axis = 0
	}
	return Grid{axis: axis, cells: make([]uint8, axis*axis)}
}

// FromRows copies a two-dimensional slice into a Grid. Every row must be as long as
// the number of rows.
func FromRows(rows [][]uint8) (Grid, error) {
	axis := len(rows)
	cells := make([]uint8, 0, axis*axis)
	for i, row := range rows {
		if len(row) != axis {
			return Grid{}, &InvalidGridError{Axis: axis, Row: i, Width: len(row), Reason: "jagged row"}
		}
		cells = append(cells, row...)
	}
	return Grid{axis: axis, cells: cells}, nil
}

// Axis returns the number of rows (and columns) of the grid
func (g Grid) Axis() int {
	return g.axis
}

// At returns the value of a cell, or Dead when the coordinates are out of range
func (g Grid) At(row, col int) uint8 {
	if row < 0 || row >= g.axis || col < 0 || col >= g.axis {
		return Dead
	}
	return g.cells[row*g.axis+col]
}

// Wrap maps any coordinates onto the torus.
func (g Grid) Wrap(row, col int) (int, int) {
	if g.axis == 0 {
		return 0, 0
	}
	row = (row%g.axis + g.axis) % g.axis
	col = (col%g.axis + g.axis) % g.axis
	return row, col
}

// Rows returns a deep copy of the cells as a two-dimensional slice
func (g Grid) Rows() [][]uint8 {
	rows := make([][]uint8, g.axis)
	for r := range g.axis {
		rows[r] = make([]uint8, g.axis)
		copy(rows[r], g.cells[r*g.axis:(r+1)*g.axis])
	}
	return rows
}

// Population returns the number of living cells
func (g Grid) Population() (count int) {
	for _, v := range g.cells {
		if v > 0 {
			count++
		}
	}
	return
}

// Equal reports whether both grids have the same shape and cell values
func (g Grid) Equal(other Grid) bool {
	if g.axis != other.axis || len(g.cells) != len(other.cells) {
		return false
	}
	for i, v := range g.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// Hash returns an MD5 digest of the grid state, used for cycle detection
func (g Grid) Hash() string {
	h := md5.New()
	h.Write([]byte{byte(g.axis >> 24), byte(g.axis >> 16), byte(g.axis >> 8), byte(g.axis)})
	h.Write(g.cells)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Validate rejects degenerate and non-square grids.
func (g Grid) Validate() error {
	if g.axis <= 0 {
		return &InvalidGridError{Axis: g.axis, Reason: "axis must be positive"}
	}
	if len(g.cells) != g.axis*g.axis {
		return &InvalidGridError{Axis: g.axis, Width: len(g.cells), Reason: "grid is not square"}
	}
	return nil
}

// Builder fills in a grid before it is published as an immutable snapshot.
type Builder struct {
	axis  int
	cells []uint8
}

func NewBuilder(axis int) *Builder {
	if axis < 0 {
		axis = 0
	}
	return &Builder{axis: axis, cells: make([]uint8, axis*axis)}
}

// Set writes a cell value; out of range coordinates are ignored
func (b *Builder) Set(row, col int, v uint8) {
	if row >= 0 && row < b.axis && col >= 0 && col < b.axis {
		b.cells[row*b.axis+col] = v
	}
}

// Build hands the cells over to a Grid. The builder is empty afterwards.
func (b *Builder) Build() Grid {
	g := Grid{axis: b.axis, cells: b.cells}
	b.cells = make([]uint8, b.axis*b.axis)
	return g
}
