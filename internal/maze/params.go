package maze

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when generation parameters cannot describe a maze.
var ErrInvalidParams = errors.New("maze: invalid parameters")

// Source is the random generator threaded into maze construction.
// *rand.Rand satisfies it; tests may pass scripted sources.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Params configures maze generation.
type Params struct {
	Width  int
	Height int
	Home   Point
	Goal   Point

	// Density is the number of wall placement attempts as a fraction of the
	// cell count, in [0, 1]. Attempts that land on a non-empty cell do nothing,
	// so the real wall ratio is lower than Density.
	Density float64

	// Braiding is the chance, in [0, 1], that a dead end of a carved maze
	// gets opened into a loop. Ignored by other generators.
	Braiding float64
}

// DefaultParams is the classic demo setup: a 128x128 maze, home at (2,12),
// goal at (10,12) and 5000 wall attempts.
func DefaultParams() Params {
	return Params{
		Width:   128,
		Height:  128,
		Home:    P(2, 12),
		Goal:    P(10, 12),
		Density: 5000.0 / (128 * 128),
	}
}

// Validate checks dimensions, marker placement and ratios.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidParams, p.Width, p.Height)
	}
	in := func(q Point) bool {
		return q.X >= 0 && q.X < p.Width && q.Y >= 0 && q.Y < p.Height
	}
	if !in(p.Home) {
		return fmt.Errorf("%w: home %v outside %dx%d", ErrInvalidParams, p.Home, p.Width, p.Height)
	}
	if !in(p.Goal) {
		return fmt.Errorf("%w: goal %v outside %dx%d", ErrInvalidParams, p.Goal, p.Width, p.Height)
	}
	if p.Home == p.Goal {
		return fmt.Errorf("%w: home and goal share %v", ErrInvalidParams, p.Home)
	}
	if p.Density < 0 || p.Density > 1 {
		return fmt.Errorf("%w: density %g not in [0, 1]", ErrInvalidParams, p.Density)
	}
	if p.Braiding < 0 || p.Braiding > 1 {
		return fmt.Errorf("%w: braiding %g not in [0, 1]", ErrInvalidParams, p.Braiding)
	}
	return nil
}

// NewOpen builds a maze with no walls at all.
func NewOpen(p Params) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return newGrid(p.Width, p.Height, p.Home, p.Goal), nil
}
