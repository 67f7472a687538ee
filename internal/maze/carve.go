package maze

import "fmt"

// jumps move between carving nodes, which sit on odd coordinates.
var jumps = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

// steps are the four orthogonal unit moves.
var steps = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// NewCarved builds a perfect maze with a recursive backtracker, optionally
// braided into a graph with loops. Nodes live on odd coordinates with a one
// cell wall border. Home and goal are dug into the nearest node, so the
// result always has a home-to-goal path.
func NewCarved(p Params, rng Source) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Width < 3 || p.Height < 3 {
		return nil, fmt.Errorf("%w: carved maze needs at least 3x3, got %dx%d", ErrInvalidParams, p.Width, p.Height)
	}

	g := newGrid(p.Width, p.Height, p.Home, p.Goal)
	for i, r := range g.rooms {
		if r == RoomEmpty {
			g.rooms[i] = RoomWall
		}
	}

	backtrack(g, nearestNode(g, p.Home), rng)
	if p.Braiding > 0 {
		braid(g, p.Braiding, rng)
	}
	dig(g, p.Home, nearestNode(g, p.Home))
	dig(g, p.Goal, nearestNode(g, p.Goal))
	return g, nil
}

// backtrack carves a uniform spanning tree over all nodes reachable from start.
func backtrack(g *Grid, start Point, rng Source) {
	visited := make([]bool, len(g.rooms))
	visited[g.index(start)] = true
	g.set(start, RoomEmpty)
	stack := []Point{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		var cand [4]Point
		n := 0
		for _, d := range jumps {
			next := cur.Add(d.X, d.Y)
			if next.X > 0 && next.X < g.width-1 && next.Y > 0 && next.Y < g.height-1 && !visited[g.index(next)] {
				cand[n] = d
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := cand[rng.Intn(n)]
		next := cur.Add(d.X, d.Y)
		g.set(cur.Add(d.X/2, d.Y/2), RoomEmpty)
		g.set(next, RoomEmpty)
		visited[g.index(next)] = true
		stack = append(stack, next)
	}
}

// braid opens walls next to dead ends with the given probability, skipping
// openings that would create 2x2 plazas or free-standing pillars.
func braid(g *Grid, probability float64, rng Source) {
	for y := 1; y < g.height-1; y += 2 {
		for x := 1; x < g.width-1; x += 2 {
			node := P(x, y)
			if !g.open(node) || g.exits(node) != 1 || rng.Float64() >= probability {
				continue
			}

			var cand [4]Point
			n := 0
			for _, d := range jumps {
				far := node.Add(d.X, d.Y)
				wall := node.Add(d.X/2, d.Y/2)
				if g.open(far) && g.At(wall) == RoomWall && g.safeToOpen(wall) {
					cand[n] = wall
					n++
				}
			}
			if n > 0 {
				g.set(cand[rng.Intn(n)], RoomEmpty)
			}
		}
	}
}

// open reports whether a cell can be walked on. Markers count as open.
func (g *Grid) open(p Point) bool {
	return g.At(p) != RoomWall
}

func (g *Grid) exits(p Point) int {
	n := 0
	for _, d := range steps {
		if g.open(p.Add(d.X, d.Y)) {
			n++
		}
	}
	return n
}

// safeToOpen reports whether turning the wall at p into a passage keeps the
// maze free of 2x2 open plazas and isolated single-cell pillars.
func (g *Grid) safeToOpen(p Point) bool {
	o := func(dx, dy int) bool { return g.open(p.Add(dx, dy)) }

	if (o(-1, -1) && o(0, -1) && o(-1, 0)) ||
		(o(0, -1) && o(1, -1) && o(1, 0)) ||
		(o(-1, 0) && o(-1, 1) && o(0, 1)) ||
		(o(1, 0) && o(0, 1) && o(1, 1)) {
		return false
	}

	for _, d := range steps {
		n := p.Add(d.X, d.Y)
		if !g.InBounds(n) || g.At(n) != RoomWall {
			continue
		}
		walls := 0
		for _, d2 := range steps {
			nn := n.Add(d2.X, d2.Y)
			if nn == p || !g.InBounds(nn) {
				continue
			}
			if g.At(nn) == RoomWall {
				walls++
			}
		}
		if walls == 0 {
			return false
		}
	}
	return true
}

// nearestNode returns the carving node closest to p.
func nearestNode(g *Grid, p Point) Point {
	return P(oddWithin(p.X, g.width), oddWithin(p.Y, g.height))
}

// oddWithin rounds v to an odd coordinate in [1, n-2].
func oddWithin(v, n int) int {
	v |= 1
	if v > n-2 {
		v = n - 2
		if v%2 == 0 {
			v--
		}
	}
	return v
}

// dig opens an L-shaped corridor from p to the node, horizontal leg first.
func dig(g *Grid, p, node Point) {
	cur := p
	for cur.X != node.X {
		if cur.X < node.X {
			cur.X++
		} else {
			cur.X--
		}
		g.set(cur, RoomEmpty)
	}
	for cur.Y != node.Y {
		if cur.Y < node.Y {
			cur.Y++
		} else {
			cur.Y--
		}
		g.set(cur, RoomEmpty)
	}
}
