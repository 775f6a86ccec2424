package model

import "fmt"

// InvalidGridError reports a grid that violates the square, non-empty precondition
type InvalidGridError struct {
	Axis   int
	Row    int
	Width  int
	Reason string
}

func (e *InvalidGridError) Error() string {
	if e.Width != 0 {
		return fmt.Sprintf("invalid grid (axis %d, row %d, width %d): %s", e.Axis, e.Row, e.Width, e.Reason)
	}
	return fmt.Sprintf("invalid grid (axis %d): %s", e.Axis, e.Reason)
}
