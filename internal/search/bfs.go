// Package search runs a breadth-first search one step at a time so a frame
// loop can advance it once per tick and paint each step as it happens.
package search

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mazetrace/internal/maze"
)

var (
	// ErrNoPath is returned once the frontier runs dry without reaching a goal.
	ErrNoPath = errors.New("search: no path to goal")

	// ErrWrongPhase is returned when a step is requested in a phase that
	// does not accept it.
	ErrWrongPhase = errors.New("search: wrong phase")
)

// Phase is the lifecycle state of a search.
type Phase uint8

const (
	PhaseSearching Phase = iota
	PhaseFound
	PhaseBacktracking
	PhaseDone
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhaseFound:
		return "found"
	case PhaseBacktracking:
		return "backtracking"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Finished reports whether no more steps can be taken.
func (p Phase) Finished() bool {
	return p == PhaseDone || p == PhaseFailed
}

// EventKind tells what a search step did.
type EventKind uint8

const (
	EventExpanded EventKind = iota
	EventGoalReached
	EventFailed
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventExpanded:
		return "expanded"
	case EventGoalReached:
		return "goal_reached"
	case EventFailed:
		return "failed"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is the outcome of one AdvanceSearch call.
type Event struct {
	Kind EventKind
	// Cell is the cell taken off the frontier this step.
	Cell maze.Point
	// Goal is the goal cell; set only for EventGoalReached.
	Goal maze.Point
}

// neighbors is the fixed expansion order: up, down, right, left.
var neighbors = [4]maze.Point{{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0}}

// BFS is a breadth-first search over a maze.Maze, advanced explicitly one
// step per call. It is not safe for concurrent use.
//
// Restarting means building a new BFS; there is no reset.
type BFS struct {
	home    maze.Point
	goal    maze.Point
	current maze.Point
	phase   Phase

	// queue[head:] is the frontier.
	queue []maze.Point
	head  int

	// parent holds every discovered cell except home.
	parent   map[maze.Point]maze.Point
	expanded int
}

// New creates a search rooted at home with home as the only frontier entry.
func New(home maze.Point) *BFS {
	return &BFS{
		home:    home,
		current: home,
		phase:   PhaseSearching,
		queue:   []maze.Point{home},
		parent:  make(map[maze.Point]maze.Point),
	}
}

// AdvanceSearch expands the front of the frontier.
//
// Neighbors are examined in the order up, down, right, left. Walls and home
// are skipped, as is anything already discovered. An empty neighbor is
// recorded and queued. A goal neighbor is recorded, the search switches to
// PhaseFound and the remaining neighbors are not examined.
//
// With an empty frontier the search fails: the phase becomes PhaseFailed
// and every call returns an EventFailed event with ErrNoPath.
func (b *BFS) AdvanceSearch(m maze.Maze) (Event, error) {
	switch b.phase {
	case PhaseSearching:
	case PhaseFailed:
		return Event{Kind: EventFailed, Cell: b.current}, ErrNoPath
	default:
		return Event{}, fmt.Errorf("%w: advance search while %s", ErrWrongPhase, b.phase)
	}

	if b.head >= len(b.queue) {
		b.phase = PhaseFailed
		b.queue, b.head = nil, 0
		return Event{Kind: EventFailed, Cell: b.current}, ErrNoPath
	}

	e := b.pop()
	b.current = e
	b.expanded++

	for _, d := range neighbors {
		n := e.Add(d.X, d.Y)
		if n == b.home {
			continue
		}
		if _, seen := b.parent[n]; seen {
			continue
		}
		switch m.Get(n.X, n.Y) {
		case maze.RoomEmpty:
			b.parent[n] = e
			b.queue = append(b.queue, n)
		case maze.RoomGoal:
			b.parent[n] = e
			b.goal = n
			b.current = n
			b.phase = PhaseFound
			return Event{Kind: EventGoalReached, Cell: e, Goal: n}, nil
		}
	}
	return Event{Kind: EventExpanded, Cell: e}, nil
}

func (b *BFS) pop() maze.Point {
	e := b.queue[b.head]
	b.head++
	// Reclaim the consumed prefix once it dominates the slice.
	if b.head > 1024 && b.head*2 > len(b.queue) {
		b.queue = append(b.queue[:0], b.queue[b.head:]...)
		b.head = 0
	}
	return e
}

// AdvanceBacktrace walks one cell from the goal back toward home and
// returns it. The cursor starts at the goal, so the first call returns the
// goal's parent and the last successful call returns home. The call after
// that returns false and moves the search to PhaseDone.
//
// In any phase other than PhaseFound or PhaseBacktracking it returns false
// without changing anything.
func (b *BFS) AdvanceBacktrace() (maze.Point, bool) {
	switch b.phase {
	case PhaseFound:
		b.phase = PhaseBacktracking
	case PhaseBacktracking:
	default:
		return maze.Point{}, false
	}

	if b.current == b.home {
		b.phase = PhaseDone
		return maze.Point{}, false
	}
	p, ok := b.parent[b.current]
	if !ok {
		// Only home lacks a parent, so this means the tree is broken.
		b.phase = PhaseDone
		return maze.Point{}, false
	}
	b.current = p
	return p, true
}

// Phase returns the current lifecycle state.
func (b *BFS) Phase() Phase { return b.phase }

// Home returns the search root.
func (b *BFS) Home() maze.Point { return b.home }

// Goal returns the goal cell and whether it has been reached.
func (b *BFS) Goal() (maze.Point, bool) {
	return b.goal, b.phase != PhaseSearching && b.phase != PhaseFailed
}

// Current returns the cursor: the last expanded cell while searching, the
// last backtraced cell afterwards.
func (b *BFS) Current() maze.Point { return b.current }

// Frontier returns the number of queued cells.
func (b *BFS) Frontier() int { return len(b.queue) - b.head }

// Visited returns the number of discovered cells, home included.
func (b *BFS) Visited() int { return len(b.parent) + 1 }

// Expanded returns the number of cells taken off the frontier.
func (b *BFS) Expanded() int { return b.expanded }

// Discovered reports whether p has been reached by the search.
func (b *BFS) Discovered(p maze.Point) bool {
	if p == b.home {
		return true
	}
	_, ok := b.parent[p]
	return ok
}

// Parent returns the cell p was discovered from.
func (b *BFS) Parent(p maze.Point) (maze.Point, bool) {
	q, ok := b.parent[p]
	return q, ok
}

// Path returns the shortest path from home to goal, both included. It is
// nil until the goal has been reached.
func (b *BFS) Path() []maze.Point {
	if _, ok := b.Goal(); !ok {
		return nil
	}
	var path []maze.Point
	for c := b.goal; ; {
		path = append(path, c)
		if c == b.home {
			break
		}
		p, ok := b.parent[c]
		if !ok {
			return nil
		}
		c = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Snapshot is a read-only summary of a search.
type Snapshot struct {
	Phase    Phase
	Current  maze.Point
	Frontier int
	Visited  int
	Expanded int
	// PathLen is the number of steps from home to goal, 0 until found.
	PathLen int
}

// Snapshot captures the current counters.
func (b *BFS) Snapshot() Snapshot {
	s := Snapshot{
		Phase:    b.phase,
		Current:  b.current,
		Frontier: b.Frontier(),
		Visited:  b.Visited(),
		Expanded: b.expanded,
	}
	if p := b.Path(); len(p) > 0 {
		s.PathLen = len(p) - 1
	}
	return s
}
