package canvas

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds matches every *OutOfBoundsError via errors.Is.
	ErrOutOfBounds = errors.New("canvas: tile out of bounds")

	// ErrInvalidSize is returned by New for non-positive dimensions.
	ErrInvalidSize = errors.New("canvas: invalid size")

	// ErrInvalidRate is returned by New for a negative or NaN fade rate.
	ErrInvalidRate = errors.New("canvas: invalid fade rate")
)

// OutOfBoundsError reports a tile coordinate outside the canvas.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("canvas: tile (%d,%d) outside %dx%d", e.X, e.Y, e.Width, e.Height)
}

// Is lets errors.Is(err, ErrOutOfBounds) match.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
