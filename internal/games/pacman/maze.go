package pacman

import "github.com/vovakirdan/retro-arcade/internal/pathfind"

// Tile is the content of one maze cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWall
	TileDot
	TilePower
	TileGate
)

// Maze dimensions and special cells.
const (
	Cols = 28
	Rows = 31

	TunnelRow = 14
	GateRow   = 12
)

var (
	// PlayerSpawn is where the player starts each life.
	PlayerSpawn = pathfind.Cell{X: 13, Y: 23}
	// HomeCell is where dead ghosts return to.
	HomeCell = pathfind.Cell{X: 13, Y: 14}
	// ExitCell is the first cell above the gate a leaving ghost reaches.
	ExitCell = pathfind.Cell{X: 13, Y: 11}
)

// layout is the starting maze: '#' wall, '.' dot, 'o' power pellet,
// '-' ghost-house gate, ' ' empty floor.
var layout = [Rows]string{
	"############################",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#o####.#####.##.#####.####o#",
	"#.####.#####.##.#####.####.#",
	"#..........................#",
	"#.####.##.########.##.####.#",
	"#.####.##.########.##.####.#",
	"#......##....##....##......#",
	"######.##### ## #####.######",
	"     #.##          ##.#     ",
	"     #.## ###  ### ##.#     ",
	"     #.## #  --  # ##.#     ",
	"######.## #      # ##.######",
	"      .   #      #   .      ",
	"######.## #      # ##.######",
	"     #.## ######## ##.#     ",
	"     #.##          ##.#     ",
	"     #.## ######## ##.#     ",
	"######.## ######## ##.######",
	"#............##............#",
	"#.####.#####..#.#####.####.#",
	"#.####.#####..#.#####.####.#",
	"#o..##.......  .......##..o#",
	"###.##.##.########.##.##.###",
	"###.##.##.########.##.##.###",
	"#......##....##....##......#",
	"#.##########.##.##########.#",
	"#.##########.##.##########.#",
	"#..........................#",
	"############################",
}

// Maze is the mutable tile grid of one level.
type Maze [Rows][Cols]Tile

// NewMaze returns a full maze with every dot in place.
func NewMaze() Maze {
	var m Maze
	for y, row := range layout {
		for x, ch := range row {
			switch ch {
			case '#':
				m[y][x] = TileWall
			case '.':
				m[y][x] = TileDot
			case 'o':
				m[y][x] = TilePower
			case '-':
				m[y][x] = TileGate
			default:
				m[y][x] = TileEmpty
			}
		}
	}
	return m
}

// At returns the tile of a cell; cells outside the maze read as walls.
func (m *Maze) At(c pathfind.Cell) Tile {
	if c.X < 0 || c.Y < 0 || c.X >= Cols || c.Y >= Rows {
		return TileWall
	}
	return m[c.Y][c.X]
}

// Pellets counts dots and power pellets left.
func (m *Maze) Pellets() int {
	n := 0
	for y := range m {
		for x := range m[y] {
			if t := m[y][x]; t == TileDot || t == TilePower {
				n++
			}
		}
	}
	return n
}

// walker adapts the maze to pathfind.Grid for one kind of walker.
type walker struct {
	maze *Maze
	gate gateRule
}

type gateRule int

const (
	gateClosed   gateRule = iota // the player never enters the gate
	gateOneWay                   // living ghosts may not go down through it
	gateOpen                     // dead ghosts pass both ways to get home
)

func (w walker) Size() (int, int)   { return Cols, Rows }
func (w walker) Wraps(row int) bool { return row == TunnelRow }

func (w walker) Enterable(_, to pathfind.Cell, d pathfind.Dir) bool {
	switch w.maze.At(to) {
	case TileWall:
		return false
	case TileGate:
		switch w.gate {
		case gateClosed:
			return false
		case gateOneWay:
			return d != pathfind.Down
		}
	}
	return true
}

func (g *Game) playerGrid() walker { return walker{maze: &g.w.Maze, gate: gateClosed} }
func (g *Game) ghostGrid() walker  { return walker{maze: &g.w.Maze, gate: gateOneWay} }
func (g *Game) homeGrid() walker   { return walker{maze: &g.w.Maze, gate: gateOpen} }
