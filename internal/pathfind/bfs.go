// Package pathfind finds first steps of shortest paths on small tile grids.
//
// The search is a breadth-first expansion with a fixed neighbor order
// (Right, Left, Down, Up) so equal-length routes always resolve the same way,
// and a node budget so a single query can never stall a tick.
package pathfind

// DefaultMaxIter bounds the number of cells expanded by one query.
const DefaultMaxIter = 600

// Cell is a grid coordinate: X is the column, Y the row.
type Cell struct {
	X, Y int
}

// Dir is one of the four grid directions.
type Dir int8

const (
	Right Dir = iota
	Left
	Down
	Up

	// None marks "no direction" in lookups.
	None Dir = -1
)

// Order is the fixed expansion order shared by every query.
var Order = [4]Dir{Right, Left, Down, Up}

var dirVectors = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Delta returns the column and row offsets of a direction.
func (d Dir) Delta() (dx, dy int) {
	if d < 0 || int(d) >= len(dirVectors) {
		return 0, 0
	}
	v := dirVectors[d]
	return v[0], v[1]
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	switch d {
	case Right:
		return Left
	case Left:
		return Right
	case Down:
		return Up
	case Up:
		return Down
	default:
		return None
	}
}

func (d Dir) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "none"
	}
}

// Grid describes walkable cells.
type Grid interface {
	// Size returns the grid dimensions in cells.
	Size() (w, h int)
	// Wraps reports whether walking off either side of a row re-enters on
	// the other side.
	Wraps(row int) bool
	// Enterable reports whether a walker at from may step in direction d
	// into to. Bounds and wrap are resolved before this is called.
	Enterable(from, to Cell, d Dir) bool
}

// Neighbor returns the cell one step from c in direction d.
// The second result is false when the step leaves the grid on a row
// without wrap.
func Neighbor(g Grid, c Cell, d Dir) (Cell, bool) {
	w, h := g.Size()
	dx, dy := d.Delta()
	n := Cell{c.X + dx, c.Y + dy}
	if n.Y < 0 || n.Y >= h {
		return n, false
	}
	if n.X < 0 || n.X >= w {
		if !g.Wraps(n.Y) || w == 0 {
			return n, false
		}
		n.X = (n.X%w + w) % w
	}
	return n, true
}

// CanMove reports whether a single step from c in direction d is legal.
func CanMove(g Grid, c Cell, d Dir) bool {
	n, ok := Neighbor(g, c, d)
	return ok && g.Enterable(c, n, d)
}

// Legal lists the directions that can be taken from c, in Order.
func Legal(g Grid, c Cell) []Dir {
	dirs := make([]Dir, 0, 4)
	for _, d := range Order {
		if CanMove(g, c, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Step returns the first move of a shortest path from start to the nearest
// cell satisfying goal. It expands at most maxIter cells (DefaultMaxIter when
// maxIter <= 0). The result is false when no goal is reached within budget,
// and also when start itself satisfies goal since no move is needed.
func Step(g Grid, start Cell, goal func(Cell) bool, maxIter int) (Dir, bool) {
	w, h := g.Size()
	if w <= 0 || h <= 0 || start.X < 0 || start.Y < 0 || start.X >= w || start.Y >= h {
		return None, false
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	// first[i] is the initial move on the discovered path to cell i.
	// Unvisited cells hold unvisited.
	const unvisited = Dir(-2)
	first := make([]Dir, w*h)
	for i := range first {
		first[i] = unvisited
	}
	startIdx := start.Y*w + start.X
	first[startIdx] = None

	queue := make([]Cell, 0, 64)
	queue = append(queue, start)

	for head := 0; head < len(queue) && head < maxIter; head++ {
		cur := queue[head]
		curFirst := first[cur.Y*w+cur.X]
		if goal(cur) {
			if curFirst == None {
				return None, false
			}
			return curFirst, true
		}

		for _, d := range Order {
			n, ok := Neighbor(g, cur, d)
			if !ok || !g.Enterable(cur, n, d) {
				continue
			}
			idx := n.Y*w + n.X
			if first[idx] != unvisited {
				continue
			}
			if curFirst == None {
				first[idx] = d
			} else {
				first[idx] = curFirst
			}
			queue = append(queue, n)
		}
	}
	return None, false
}

// Distance returns the number of steps on a shortest path from start to a
// goal cell, or -1 when none is found within maxIter expansions.
func Distance(g Grid, start Cell, goal func(Cell) bool, maxIter int) int {
	w, h := g.Size()
	if w <= 0 || h <= 0 || start.X < 0 || start.Y < 0 || start.X >= w || start.Y >= h {
		return -1
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	dist := make([]int, w*h)
	for i := range dist {
		dist[i] = -1
	}
	dist[start.Y*w+start.X] = 0
	queue := []Cell{start}

	for head := 0; head < len(queue) && head < maxIter; head++ {
		cur := queue[head]
		d0 := dist[cur.Y*w+cur.X]
		if goal(cur) {
			return d0
		}
		for _, d := range Order {
			n, ok := Neighbor(g, cur, d)
			if !ok || !g.Enterable(cur, n, d) || dist[n.Y*w+n.X] >= 0 {
				continue
			}
			dist[n.Y*w+n.X] = d0 + 1
			queue = append(queue, n)
		}
	}
	return -1
}
