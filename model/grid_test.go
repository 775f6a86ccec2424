package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRowsRejectsJaggedRows(t *testing.T) {
	_, err := FromRows([][]uint8{
		{0, 1, 0},
		{1, 1},
		{0, 0, 0},
	})
	require.Error(t, err)

	var invalid *InvalidGridError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 1, invalid.Row)
	assert.Equal(t, 2, invalid.Width)
}

func TestFromRowsCopiesInput(t *testing.T) {
	rows := [][]uint8{{1, 0}, {0, 1}}
	g, err := FromRows(rows)
	require.NoError(t, err)

	rows[0][0] = 0
	assert.Equal(t, Alive, g.At(0, 0))
	assert.Equal(t, 2, g.Population())
}

func TestRowsReturnsCopy(t *testing.T) {
	g, err := FromRows([][]uint8{{1, 0}, {0, 0}})
	require.NoError(t, err)

	rows := g.Rows()
	rows[0][0] = 0
	assert.Equal(t, Alive, g.At(0, 0))
}

func TestWrap(t *testing.T) {
	g := NewGrid(5)
	cases := []struct {
		row, col         int
		wantRow, wantCol int
	}{
		{-1, -1, 4, 4},
		{5, 5, 0, 0},
		{2, 7, 2, 2},
		{-6, 0, 4, 0},
	}
	for _, c := range cases {
		r, col := g.Wrap(c.row, c.col)
		assert.Equal(t, c.wantRow, r, "row for (%d,%d)", c.row, c.col)
		assert.Equal(t, c.wantCol, col, "col for (%d,%d)", c.row, c.col)
	}
}

func TestAtOutOfRange(t *testing.T) {
	b := NewBuilder(2)
	b.Set(1, 1, Alive)
	g := b.Build()

	assert.Equal(t, Dead, g.At(-1, 0))
	assert.Equal(t, Dead, g.At(0, 2))
	assert.Equal(t, Alive, g.At(1, 1))
}

func TestBuilderHandsOverCells(t *testing.T) {
	b := NewBuilder(3)
	b.Set(0, 0, Alive)
	g := b.Build()

	b.Set(1, 1, Alive)
	assert.Equal(t, 1, g.Population())
	assert.Equal(t, Dead, g.At(1, 1))
}

func TestValidate(t *testing.T) {
	assert.Error(t, Grid{}.Validate())
	assert.Error(t, NewGrid(0).Validate())
	assert.NoError(t, NewGrid(1).Validate())
}

func TestEqualAndHash(t *testing.T) {
	a, err := FromRows([][]uint8{{1, 0}, {0, 1}})
	require.NoError(t, err)
	b, err := FromRows([][]uint8{{1, 0}, {0, 1}})
	require.NoError(t, err)
	c, err := FromRows([][]uint8{{0, 1}, {1, 0}})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.False(t, NewGrid(2).Equal(NewGrid(3)))
}

func TestPopulationCountsAnyPositiveValue(t *testing.T) {
	g, err := FromRows([][]uint8{{2, 0}, {0, 255}})
	require.NoError(t, err)
	assert.Equal(t, 2, g.Population())
}
