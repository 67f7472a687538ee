// Package maze models the 4-connected grid the search runs on.
//
// A maze answers one question, "what is at this cell", through the Maze
// interface. Coordinates are signed and anything outside the grid reads as
// a wall, so callers can query neighbors without bounds checks.
package maze

import (
	"fmt"
	"strings"
)

// Room classifies a single maze cell.
type Room uint8

const (
	RoomEmpty Room = iota
	RoomWall
	RoomHome
	RoomGoal
)

// String returns the room name.
func (r Room) String() string {
	switch r {
	case RoomEmpty:
		return "empty"
	case RoomWall:
		return "wall"
	case RoomHome:
		return "home"
	case RoomGoal:
		return "goal"
	default:
		return fmt.Sprintf("room(%d)", uint8(r))
	}
}

// Char returns the layout-file character for the room.
func (r Room) Char() rune {
	switch r {
	case RoomWall:
		return '#'
	case RoomHome:
		return 'H'
	case RoomGoal:
		return 'G'
	default:
		return '.'
	}
}

// Maze is the query boundary consumed by the search.
type Maze interface {
	// Get returns the room at (x, y). Out-of-bounds coordinates return
	// RoomWall instead of panicking.
	Get(x, y int) Room
}

// Point is a cell coordinate. X grows to the right, Y grows downward in
// row-major storage (index = x + y*width).
type Point struct {
	X, Y int
}

// P is a convenience constructor for Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the Manhattan distance to another point.
func (p Point) Manhattan(o Point) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is the concrete maze: width*height rooms stored row-major plus the
// fixed home and goal markers.
type Grid struct {
	width  int
	height int
	rooms  []Room
	home   Point
	goal   Point
}

// newGrid allocates an all-empty grid and places the home and goal markers.
// Callers validate dimensions and marker positions first.
func newGrid(w, h int, home, goal Point) *Grid {
	g := &Grid{
		width:  w,
		height: h,
		rooms:  make([]Room, w*h),
		home:   home,
		goal:   goal,
	}
	g.rooms[g.index(home)] = RoomHome
	g.rooms[g.index(goal)] = RoomGoal
	return g
}

func (g *Grid) index(p Point) int {
	return p.X + p.Y*g.width
}

// InBounds returns true if the point lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Get implements Maze.
func (g *Grid) Get(x, y int) Room {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return RoomWall
	}
	return g.rooms[x+y*g.width]
}

// At is Get for a Point.
func (g *Grid) At(p Point) Room {
	return g.Get(p.X, p.Y)
}

// set overwrites a cell. Home and goal markers are never replaced and
// out-of-bounds writes are ignored.
func (g *Grid) set(p Point, r Room) {
	if !g.InBounds(p) {
		return
	}
	i := g.index(p)
	if g.rooms[i] == RoomHome || g.rooms[i] == RoomGoal {
		return
	}
	g.rooms[i] = r
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height.
func (g *Grid) Height() int { return g.height }

// Home returns the search start cell.
func (g *Grid) Home() Point { return g.home }

// Goal returns the search target cell.
func (g *Grid) Goal() Point { return g.goal }

// Count returns how many cells hold the given room.
func (g *Grid) Count(r Room) int {
	n := 0
	for _, v := range g.rooms {
		if v == r {
			n++
		}
	}
	return n
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Point, r Room)) {
	for i, r := range g.rooms {
		fn(Point{X: i % g.width, Y: i / g.width}, r)
	}
}

// String renders the grid in layout-file notation, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.rooms[x+y*g.width].Char())
		}
	}
	return sb.String()
}
