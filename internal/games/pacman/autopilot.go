package pacman

import (
	"math"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/pathfind"
)

// dangerRadius is how close a chasing ghost may come before the autopilot
// stops eating and runs.
const dangerRadius = 8.0

// Autopilot decides at each cell center: flee the nearest chasing ghost
// when one is close, otherwise head for a power pellet (unless already
// powered) or the nearest dot. Between cell centers the queued turn stands.
func (g *Game) Autopilot(frame *core.InputFrame) {
	p := g.w.Player
	if p.Progress != 0 {
		return
	}
	if d := g.pilotDir(); d != pathfind.None {
		frame.Set(dirAction(d))
	}
}

func (g *Game) pilotDir() pathfind.Dir {
	grid := g.playerGrid()
	here := g.w.Player.Cell
	pos := core.Vec{X: float64(here.X), Y: float64(here.Y)}

	for _, gh := range g.w.Ghosts {
		if gh.Mode == ModeChase && core.Dist(gh.Pos(), pos) < dangerRadius {
			return g.safeDir(grid, here)
		}
	}

	if g.w.PowerTimer == 0 {
		if d, ok := pathfind.Step(grid, here, g.tileIs(TilePower), pathfind.DefaultMaxIter); ok {
			return d
		}
	}
	if d, ok := pathfind.Step(grid, here, g.tileIs(TileDot), pathfind.DefaultMaxIter); ok {
		return d
	}

	// Nothing reachable in budget: wander. The pick depends only on the
	// tick so the autopilot never draws from the game's random source.
	moves := pathfind.Legal(grid, here)
	if len(moves) == 0 {
		return pathfind.None
	}
	return moves[g.w.Tick%len(moves)]
}

// safeDir picks the legal move whose next cell is farthest from any
// ghost, with a small penalty for reversing.
func (g *Game) safeDir(grid pathfind.Grid, here pathfind.Cell) pathfind.Dir {
	best, bestScore := pathfind.None, math.Inf(-1)
	for _, d := range pathfind.Legal(grid, here) {
		n, _ := pathfind.Neighbor(grid, here, d)
		score := g.nearestGhost(core.Vec{X: float64(n.X), Y: float64(n.Y)})
		if d == g.w.Player.Dir.Opposite() {
			score -= 2
		}
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

func (g *Game) nearestGhost(p core.Vec) float64 {
	nearest := math.Inf(1)
	for _, gh := range g.w.Ghosts {
		nearest = math.Min(nearest, core.Dist(gh.Pos(), p))
	}
	return nearest
}

func (g *Game) tileIs(t Tile) func(pathfind.Cell) bool {
	return func(c pathfind.Cell) bool { return g.w.Maze.At(c) == t }
}

func dirAction(d pathfind.Dir) core.Action {
	switch d {
	case pathfind.Up:
		return core.ActionUp
	case pathfind.Down:
		return core.ActionDown
	case pathfind.Left:
		return core.ActionLeft
	case pathfind.Right:
		return core.ActionRight
	}
	return core.ActionNone
}
