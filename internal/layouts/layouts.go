// Package layouts registers the built-in maze layouts. Import it for its
// side effects:
//
//	import _ "github.com/vovakirdan/mazetrace/internal/layouts"
package layouts

import (
	"errors"

	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/registry"
)

// Layout IDs.
const (
	Scatter = "scatter"
	Carved  = "carved"
	Open    = "open"
	File    = "file"
)

// ErrNoFile is returned by the file layout when no path was given.
var ErrNoFile = errors.New("layouts: file layout needs a layout file")

func init() {
	registry.Register(Scatter, "Random wall scatter", func(req registry.Request, rng maze.Source) (*maze.Grid, error) {
		return maze.NewScatter(req.Params, rng)
	})
	registry.Register(Carved, "Carved maze with loops", func(req registry.Request, rng maze.Source) (*maze.Grid, error) {
		return maze.NewCarved(req.Params, rng)
	})
	registry.Register(Open, "Open floor", func(req registry.Request, _ maze.Source) (*maze.Grid, error) {
		return maze.NewOpen(req.Params)
	})
	registry.Register(File, "Hand-drawn layout file", func(req registry.Request, _ maze.Source) (*maze.Grid, error) {
		if req.File == "" {
			return nil, ErrNoFile
		}
		return maze.LoadLayout(req.File)
	})
}
