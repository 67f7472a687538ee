package maze

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLayout is returned when a layout file cannot be turned into a maze.
var ErrInvalidLayout = errors.New("maze: invalid layout")

// LayoutFile is the on-disk form of a hand-drawn maze.
//
//	name: corridor
//	rows:
//	  - "#####"
//	  - "#H.G#"
//	  - "#####"
//
// '#' is a wall, '.' or ' ' is empty, 'H' is home and 'G' is goal.
type LayoutFile struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// ParseLayoutYAML decodes a layout document into a grid.
func ParseLayoutYAML(data []byte) (*Grid, error) {
	var lf LayoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return lf.Grid()
}

// LoadLayout reads and parses a layout file. A leading ~ expands to the
// user's home directory.
func LoadLayout(path string) (*Grid, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("maze: home dir: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("maze: read layout: %w", err)
	}
	g, err := ParseLayoutYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Grid converts the rows into a maze. Every row must have the same width
// and the layout must hold exactly one home and one goal.
func (lf LayoutFile) Grid() (*Grid, error) {
	if len(lf.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLayout)
	}
	rows := make([][]rune, len(lf.Rows))
	for i, r := range lf.Rows {
		rows[i] = []rune(r)
	}
	w := len(rows[0])
	if w == 0 {
		return nil, fmt.Errorf("%w: empty first row", ErrInvalidLayout)
	}

	var (
		home, goal   Point
		homes, goals int
		walls        []Point
	)
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", ErrInvalidLayout, y, len(row), w)
		}
		for x, ch := range row {
			switch ch {
			case '#':
				walls = append(walls, P(x, y))
			case '.', ' ':
			case 'H', 'h':
				home = P(x, y)
				homes++
			case 'G', 'g':
				goal = P(x, y)
				goals++
			default:
				return nil, fmt.Errorf("%w: unknown cell %q at (%d,%d)", ErrInvalidLayout, ch, x, y)
			}
		}
	}
	if homes != 1 {
		return nil, fmt.Errorf("%w: expected one home, found %d", ErrInvalidLayout, homes)
	}
	if goals != 1 {
		return nil, fmt.Errorf("%w: expected one goal, found %d", ErrInvalidLayout, goals)
	}

	g := newGrid(w, len(rows), home, goal)
	for _, p := range walls {
		g.set(p, RoomWall)
	}
	return g, nil
}

// MarshalLayout renders a grid back into a layout document.
func MarshalLayout(name string, g *Grid) ([]byte, error) {
	lf := LayoutFile{Name: name, Rows: strings.Split(g.String(), "\n")}
	return yaml.Marshal(lf)
}
