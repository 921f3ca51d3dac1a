package pacman

import (
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/pathfind"
)

// GhostMode is a ghost's own behavior state. The global frightened timer
// layers on top of it by turning chasing ghosts into scared ones.
type GhostMode int

const (
	ModePen GhostMode = iota
	ModeExiting
	ModeChase
	ModeScared
	ModeDead
)

func (m GhostMode) String() string {
	switch m {
	case ModePen:
		return "pen"
	case ModeExiting:
		return "exiting"
	case ModeChase:
		return "chase"
	case ModeScared:
		return "scared"
	case ModeDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Personality selects how a chasing ghost picks its target.
type Personality int

const (
	Blinky Personality = iota // straight at the player
	Pinky                     // four cells ahead of the player
	Inky                      // half the time at the player, otherwise random
	Clyde                     // like Inky, slower
)

func (p Personality) String() string {
	switch p {
	case Blinky:
		return "blinky"
	case Pinky:
		return "pinky"
	case Inky:
		return "inky"
	case Clyde:
		return "clyde"
	default:
		return "unknown"
	}
}

// Ghost is one adversary. Progress runs from 0 to 1 while it moves from
// Cell toward the neighbor in Dir.
type Ghost struct {
	Kind     Personality
	Cell     pathfind.Cell
	Dir      pathfind.Dir
	Progress float64
	Speed    float64
	Mode     GhostMode
	PenTimer int
	PenDir   int // -1 up, 1 down while bouncing in the pen
}

// Pos returns the ghost's interpolated position in cells.
func (gh Ghost) Pos() core.Vec {
	return lerp(gh.Cell, gh.Dir, gh.Progress)
}

type ghostStart struct {
	kind  Personality
	cell  pathfind.Cell
	speed float64
	mode  GhostMode
	pen   int
}

var ghostStarts = [4]ghostStart{
	{Blinky, pathfind.Cell{X: 13, Y: 11}, 0.08, ModeChase, 0},
	{Pinky, pathfind.Cell{X: 13, Y: 14}, 0.075, ModePen, 120},
	{Inky, pathfind.Cell{X: 12, Y: 14}, 0.07, ModePen, 360},
	{Clyde, pathfind.Cell{X: 15, Y: 14}, 0.06, ModePen, 600},
}

// Ghost speed factors and timers.
const (
	scaredFactor = 0.6
	deadFactor   = 3.0
	penFactor    = 0.5
	penTop       = 13
	penBottom    = 15
	penReturn    = 120
)

func (g *Game) resetGhosts() {
	for i, s := range ghostStarts {
		g.w.Ghosts[i] = Ghost{
			Kind:     s.kind,
			Cell:     s.cell,
			Dir:      pathfind.None,
			Speed:    s.speed,
			Mode:     s.mode,
			PenTimer: s.pen,
			PenDir:   -1,
		}
	}
}

// stepGhost advances one ghost and reports whether the player died.
func (g *Game) stepGhost(gh *Ghost) bool {
	switch gh.Mode {
	case ModePen:
		gh.PenTimer--
		if gh.PenTimer > 0 {
			g.bounceInPen(gh)
			return false
		}
		gh.Mode = ModeExiting
		fallthrough
	case ModeExiting:
		g.leavePen(gh)
		if gh.Mode == ModeExiting {
			return false
		}
	case ModeChase, ModeScared, ModeDead:
	default:
		gh.Mode = ModeChase
	}

	if gh.Progress == 0 {
		g.chooseGhostDir(gh)
	}
	if gh.Dir != pathfind.None {
		speed := g.cfg.Speed(gh.Speed, g.w.Score, g.w.Tick)
		switch gh.Mode {
		case ModeScared:
			speed *= scaredFactor
		case ModeDead:
			speed *= deadFactor
		}
		gh.Progress += speed
		if gh.Progress >= 1 {
			g.advanceGhost(gh, g.gridFor(gh))
		}
	}
	return g.touch(gh)
}

func (g *Game) gridFor(gh *Ghost) walker {
	if gh.Mode == ModeDead {
		return g.homeGrid()
	}
	return g.ghostGrid()
}

// advanceGhost completes a move into the next cell.
func (g *Game) advanceGhost(gh *Ghost, grid pathfind.Grid) {
	if n, ok := pathfind.Neighbor(grid, gh.Cell, gh.Dir); ok {
		gh.Cell = n
	}
	gh.Progress = 0
}

// bounceInPen moves a waiting ghost up and down inside the house at half
// speed.
func (g *Game) bounceInPen(gh *Ghost) {
	if gh.Progress == 0 {
		if gh.PenDir == 0 {
			gh.PenDir = -1
		}
		ny := gh.Cell.Y + gh.PenDir
		if ny < penTop || ny > penBottom || g.w.Maze.At(pathfind.Cell{X: gh.Cell.X, Y: ny}) == TileWall {
			gh.PenDir = -gh.PenDir
		}
		gh.Dir = pathfind.Down
		if gh.PenDir < 0 {
			gh.Dir = pathfind.Up
		}
	}
	gh.Progress += g.cfg.Speed(gh.Speed, g.w.Score, g.w.Tick) * penFactor
	if gh.Progress >= 1 {
		_, dy := gh.Dir.Delta()
		gh.Cell.Y += dy
		gh.Progress = 0
	}
}

// leavePen walks a released ghost to the gate column, then up through the
// gate until it stands above the house.
func (g *Game) leavePen(gh *Ghost) {
	if gh.Progress == 0 {
		if gh.Cell.Y <= ExitCell.Y {
			// Released ghosts are not frightened by a pellet eaten earlier.
			gh.Mode = ModeChase
			return
		}
		switch {
		case gh.Cell.X < ExitCell.X:
			gh.Dir = pathfind.Right
		case gh.Cell.X > ExitCell.X:
			gh.Dir = pathfind.Left
		default:
			gh.Dir = pathfind.Up
		}
	}
	gh.Progress += g.cfg.Speed(gh.Speed, g.w.Score, g.w.Tick)
	if gh.Progress >= 1 {
		dx, dy := gh.Dir.Delta()
		gh.Cell.X += dx
		gh.Cell.Y += dy
		gh.Progress = 0
	}
}

// chooseGhostDir picks the next move of a ghost standing on a cell center.
func (g *Game) chooseGhostDir(gh *Ghost) {
	grid := g.gridFor(gh)
	var (
		move  pathfind.Dir
		found bool
	)

	switch gh.Mode {
	case ModeDead:
		if gh.Cell == HomeCell {
			gh.Mode = ModePen
			gh.PenTimer = penReturn
			gh.Dir = pathfind.None
			return
		}
		move, found = pathfind.Step(grid, gh.Cell, isCell(HomeCell), pathfind.DefaultMaxIter)
	case ModeScared:
		move, found = g.randomMove(grid, gh.Cell)
	default:
		player := g.w.Player.Cell
		switch gh.Kind {
		case Blinky:
			move, found = pathfind.Step(grid, gh.Cell, isCell(player), pathfind.DefaultMaxIter)
		case Pinky:
			dx, dy := g.w.Player.Dir.Delta()
			target := pathfind.Cell{
				X: core.Clamp(player.X+dx*4, 0, Cols-1),
				Y: core.Clamp(player.Y+dy*4, 0, Rows-1),
			}
			move, found = pathfind.Step(grid, gh.Cell, isCell(target), pathfind.DefaultMaxIter)
			if !found {
				move, found = pathfind.Step(grid, gh.Cell, isCell(player), pathfind.DefaultMaxIter)
			}
		default:
			if g.rng.Float64() > 0.5 {
				move, found = pathfind.Step(grid, gh.Cell, isCell(player), pathfind.DefaultMaxIter)
			} else {
				move, found = g.randomMove(grid, gh.Cell)
			}
		}
	}

	if !found {
		move, found = g.randomMove(grid, gh.Cell)
	}
	if found {
		gh.Dir = move
	} else {
		gh.Dir = pathfind.None
	}
}

func (g *Game) randomMove(grid pathfind.Grid, c pathfind.Cell) (pathfind.Dir, bool) {
	moves := pathfind.Legal(grid, c)
	if len(moves) == 0 {
		return pathfind.None, false
	}
	return moves[g.rng.Intn(len(moves))], true
}

// touch resolves contact between a ghost and the player.
func (g *Game) touch(gh *Ghost) bool {
	if core.Dist(gh.Pos(), g.w.Player.Pos()) >= catchDistance {
		return false
	}
	switch gh.Mode {
	case ModeScared:
		gh.Mode = ModeDead
		g.w.Score += ghostPoints
		g.sound.Tone(800, 0.1, core.WaveSquare, 0.2)
	case ModeChase:
		return true
	}
	return false
}

func isCell(target pathfind.Cell) func(pathfind.Cell) bool {
	return func(c pathfind.Cell) bool { return c == target }
}

// lerp interpolates between a cell and its neighbor in d. Tunnel moves are
// drawn from the cell being left.
func lerp(c pathfind.Cell, d pathfind.Dir, progress float64) core.Vec {
	dx, dy := d.Delta()
	return core.Vec{
		X: float64(c.X) + float64(dx)*progress,
		Y: float64(c.Y) + float64(dy)*progress,
	}
}
