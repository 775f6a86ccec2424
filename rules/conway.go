package rules

import "github.com/sheikhrachel/seedlife/model"

/*
ApplyConwayRules returns the next value of a cell from its current value and its live
neighbor count.

Conway's Game of Life rules: neighbors == 3 || (current == 1 && neighbors == 2)

The result is always model.Dead or model.Alive, whatever encoding the input used.
*/
func ApplyConwayRules(neighbors int, current uint8) uint8 {
	if neighbors == 3 || (current == model.Alive && neighbors == 2) {
		return model.Alive
	}
	return model.Dead
}
