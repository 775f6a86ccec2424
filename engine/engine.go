// Package engine advances toroidal Game of Life grids one generation at a time.
package engine

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/seedlife/model"
	"github.com/sheikhrachel/seedlife/rules"
)

// Result is the outcome of a single generation
type Result struct {
	// Changed is the number of cells whose value differs between the input and Next
	Changed int
	Next    model.Grid
}

// Converged reports whether the generation left every cell unchanged
func (r Result) Converged() bool {
	return r.Changed == 0
}

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Step computes the next generation of g. Every cell is evaluated against the input
// snapshot only, and g itself is never modified.
func Step(g model.Grid) (Result, error) {
	if err := g.Validate(); err != nil {
		return Result{}, errors.Wrap(err, "[Step] cannot advance grid")
	}

	axis := g.Axis()
	next := model.NewBuilder(axis)
	changed := 0
	for row := range axis {
		for col := range axis {
			current := g.At(row, col)
			value := rules.ApplyConwayRules(CountLiveNeighbors(g, row, col), current)
			next.Set(row, col, value)
			if value != current {
				changed++
			}
		}
	}
	return Result{Changed: changed, Next: next.Build()}, nil
}

// CountLiveNeighbors returns how many of the eight wrapped neighbors of (row, col) hold a
// value greater than zero.
func CountLiveNeighbors(g model.Grid, row, col int) int {
	if g.Axis() == 0 {
		return 0
	}
	alive := 0
	for _, d := range directions {
		r, c := g.Wrap(row+d[0], col+d[1])
		if g.At(r, c) > 0 {
			alive++
		}
	}
	return alive
}

// StepAll advances independent grids concurrently. Results are index-aligned with grids.
func StepAll(ctx context.Context, grids []model.Grid) ([]Result, error) {
	results := make([]Result, len(grids))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for i, g := range grids {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Step(g)
			if err != nil {
				return errors.Wrapf(err, "[StepAll] grid %d", i)
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
