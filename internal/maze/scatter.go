package maze

// NewScatter builds a maze by dropping walls on random cells.
// Home and goal are placed first; each attempt picks a uniformly random cell
// and turns it into a wall only if it is still empty.
func NewScatter(p Params, rng Source) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g := newGrid(p.Width, p.Height, p.Home, p.Goal)

	n := len(g.rooms)
	attempts := int(p.Density * float64(n))
	for i := 0; i < attempts; i++ {
		r := rng.Intn(n)
		if g.rooms[r] == RoomEmpty {
			g.rooms[r] = RoomWall
		}
	}
	return g, nil
}
