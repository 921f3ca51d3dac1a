package engine

import (
	"fmt"
	"io"
	"math/rand"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Default ownership timings.
const (
	DefaultAttractIdle = 20 * time.Second

	// attractRestartTicks is how long a finished attract game stays on
	// screen before the autopilot starts a new one.
	attractRestartTicks = 120
)

// Options configures a Session.
type Options struct {
	TickRate      int           // Simulation ticks per second
	MaxFrameDelta time.Duration // Largest wall-clock step accepted per frame
	HoldTicks     int           // Latch hold window for keys without key-up
	AttractIdle   time.Duration // Idle time after game over before attract re-arms
	Seed          int64         // 0 picks a fresh seed on every reset
	Lives         int           // Starting lives; 0 keeps the game's rule
	Difficulty    core.Scaler   // Adversary speed curve; nil keeps base speeds
	Audio         core.Signal   // Sound sink; nil is silent
	Logger        *log.Logger   // nil discards
}

// Session owns one running game together with its scheduler, input latch
// and attract-mode autopilot. Exactly one of the latch or the autopilot
// writes the input frame on any tick.
type Session struct {
	game   registry.Game
	info   registry.GameInfo
	opts   Options
	sched  *Scheduler
	latch  *core.Latch
	logger *log.Logger
	screen *core.Screen

	started   bool
	attract   bool
	paused    bool
	idleTicks int
	idleLimit int
	overTicks int
	state     core.GameState
	fault     error
	onOver    func(core.GameState)
	reported  bool
}

// NewSession wraps a game. The game is not reset until the screen has a
// non-zero size, see Resize.
func NewSession(g registry.Game, opts Options) *Session {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.HoldTicks == 0 {
		opts.HoldTicks = core.DefaultHoldTicks
	}
	if opts.AttractIdle <= 0 {
		opts.AttractIdle = DefaultAttractIdle
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sched := NewScheduler(opts.TickRate, opts.MaxFrameDelta)
	return &Session{
		game:      g,
		info:      registry.Describe(g),
		opts:      opts,
		sched:     sched,
		latch:     core.NewLatch(opts.HoldTicks),
		logger:    logger.With("game", g.ID()),
		screen:    core.NewScreen(0, 0),
		attract:   true,
		idleLimit: int(opts.AttractIdle / sched.Slice()),
	}
}

// Game returns the wrapped game.
func (s *Session) Game() registry.Game {
	return s.game
}

// Info returns the game's metadata.
func (s *Session) Info() registry.GameInfo {
	return s.info
}

// OnGameOver registers a callback invoked once per finished human game.
func (s *Session) OnGameOver(fn func(core.GameState)) {
	s.onOver = fn
}

// Started reports whether the game has been reset for the first time.
func (s *Session) Started() bool {
	return s.started
}

// Attract reports whether the autopilot currently owns the input.
func (s *Session) Attract() bool {
	return s.attract
}

// Paused reports whether the simulation is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Fault returns the error that stopped the game, if any.
func (s *Session) Fault() error {
	return s.fault
}

// State returns the last game state with session flags merged in.
func (s *Session) State() core.GameState {
	st := s.state
	st.Paused = s.paused
	st.Attract = s.attract
	return st
}

// Screen returns the session's render buffer.
func (s *Session) Screen() *core.Screen {
	return s.screen
}

// Resize adjusts the render buffer. The first non-zero size starts the game
// in attract mode.
func (s *Session) Resize(w, h int) {
	s.screen.Resize(w, h)
	if s.started || w <= 0 || h <= 0 {
		return
	}
	s.started = true
	s.attract = true
	s.reset()
	s.logger.Debug("session started", "width", w, "height", h)
}

// Viewport returns the mapping a game with the given logical size gets on
// the current screen.
func (s *Session) Viewport(worldW, worldH float64) core.Viewport {
	return core.FitViewport(worldW, worldH, s.screen.Width(), s.screen.Height())
}

// Press delivers a key or button press.
func (s *Session) Press(a core.Action) {
	switch a {
	case core.ActionNone:
		return
	case core.ActionPause:
		if s.started && s.fault == nil {
			s.TogglePause()
		}
		return
	case core.ActionConfirm:
		if s.paused {
			s.Resume()
		}
		return
	case core.ActionRestart:
		if s.started && s.fault == nil && !s.paused {
			s.Restart()
		}
		return
	}

	if !a.Gameplay() || !s.started || s.fault != nil || s.paused {
		return
	}
	s.idleTicks = 0
	if s.attract {
		s.takeOver()
	}
	s.latch.Press(a)
}

// Release clears a held action, for hosts that do report key-up.
func (s *Session) Release(a core.Action) {
	s.latch.Release(a)
}

// Aim records a pointer position given in screen cells. Cells outside the
// playfield are ignored. Games without a pointer ignore the aim.
func (s *Session) Aim(x, y int) {
	aimer, ok := s.game.(registry.Aimer)
	if !ok || !s.started {
		return
	}
	w, h := aimer.WorldSize()
	p, ok := s.Viewport(w, h).ToWorld(x, y)
	if !ok {
		return
	}
	s.latch.Aim(p)
	if !s.attract {
		s.idleTicks = 0
	}
}

// takeOver hands control to the human. Most games restart, as the arcade
// cabinets do when a coin drops during the demo; a game may instead keep
// the demo world. A finished demo always restarts.
func (s *Session) takeOver() {
	s.attract = false
	s.latch.Reset()
	if r, ok := s.game.(registry.TakeoverResetter); ok && !r.ResetOnTakeover() && !s.state.GameOver {
		s.overTicks = 0
		s.logger.Info("player took over", "reset", false)
		return
	}
	s.reset()
	s.logger.Info("player took over", "reset", true)
}

// Restart resets the game. The current input owner keeps control.
func (s *Session) Restart() {
	s.latch.Reset()
	s.reset()
}

// Rearm gives control back to the autopilot and restarts the game.
func (s *Session) Rearm() {
	if !s.started {
		return
	}
	s.attract = true
	s.paused = false
	s.sched.Resume()
	s.latch.Reset()
	s.reset()
	s.logger.Debug("attract mode armed")
}

// Pause freezes the simulation.
func (s *Session) Pause() {
	s.paused = true
	s.sched.Pause()
}

// Resume continues after a pause. Paused time is not simulated.
func (s *Session) Resume() {
	s.paused = false
	s.sched.Resume()
	s.latch.Reset()
}

// TogglePause flips the pause state.
func (s *Session) TogglePause() {
	if s.paused {
		s.Resume()
		return
	}
	s.Pause()
}

// Frame advances the simulation to wall-clock time now and returns the
// number of ticks run.
func (s *Session) Frame(now time.Time) int {
	if !s.started || s.fault != nil {
		return 0
	}
	n := s.sched.Frame(now)
	return s.run(n)
}

// Advance runs the ticks due after delta. Headless hosts use it instead of
// Frame.
func (s *Session) Advance(delta time.Duration) int {
	if !s.started || s.fault != nil {
		return 0
	}
	return s.run(s.sched.Advance(delta))
}

func (s *Session) run(n int) int {
	for i := 0; i < n; i++ {
		s.Tick()
		if s.fault != nil {
			return i + 1
		}
	}
	return n
}

// Tick runs exactly one simulation step regardless of wall-clock time.
func (s *Session) Tick() {
	if !s.started || s.fault != nil || s.paused {
		return
	}

	var frame core.InputFrame
	if s.attract {
		frame = core.NewInputFrame()
		if !s.guard("autopilot", func() { s.game.Autopilot(&frame) }) {
			return
		}
	} else {
		frame = s.latch.Frame()
	}
	s.latch.Tick()

	var res core.StepResult
	if !s.guard("step", func() { res = s.game.Step(frame) }) {
		return
	}
	s.state = res.State

	if !s.state.GameOver {
		s.overTicks = 0
		return
	}
	s.overTicks++
	if s.attract {
		if s.overTicks >= attractRestartTicks {
			s.reset()
		}
		return
	}
	if !s.reported {
		s.reported = true
		s.logger.Info("game over", "score", s.state.Score, "won", s.state.Won)
		if s.onOver != nil {
			s.onOver(s.state)
		}
	}
	s.idleTicks++
	if s.idleTicks >= s.idleLimit {
		s.Rearm()
	}
}

func (s *Session) reset() {
	cfg := core.RuntimeConfig{
		ScreenW:    s.screen.Width(),
		ScreenH:    s.screen.Height(),
		TickRate:   s.opts.TickRate,
		Seed:       s.opts.Seed,
		Lives:      s.opts.Lives,
		Audio:      s.opts.Audio,
		Difficulty: s.opts.Difficulty,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.RNG = rand.New(rand.NewSource(cfg.Seed))

	s.idleTicks = 0
	s.overTicks = 0
	s.reported = false
	if s.guard("reset", func() { s.game.Reset(cfg) }) {
		s.state = s.game.State()
	}
}

// guard runs fn and converts a panic into a session fault.
func (s *Session) guard(phase string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.fault = fmt.Errorf("engine: %s %s panicked: %v", s.game.ID(), phase, r)
			s.logger.Error("game crashed", "phase", phase, "panic", r, "stack", string(debug.Stack()))
			ok = false
		}
	}()
	fn()
	return true
}

// Render draws the game and the HUD row into the session screen.
func (s *Session) Render() *core.Screen {
	s.screen.Clear()
	if !s.started {
		return s.screen
	}
	if s.fault != nil {
		s.renderFault()
		return s.screen
	}
	if !s.guard("render", func() { s.game.Render(s.screen) }) {
		s.screen.Clear()
		s.renderFault()
		return s.screen
	}
	s.renderHUD()

	switch {
	case s.paused:
		// The platform draws the pause overlay.
	case s.state.GameOver && !s.attract:
		title := "GAME OVER"
		if s.state.Won {
			title = "YOU WIN"
		}
		s.screen.DrawMessage(title, fmt.Sprintf("Score %d   R restart   Esc menu", s.state.Score))
	}
	return s.screen
}

func (s *Session) renderHUD() {
	st := s.State()
	left := fmt.Sprintf(" %s  SCORE %d", strings.ToUpper(s.info.Title), st.Score)
	if st.Lives > 0 {
		left += fmt.Sprintf("  LIVES %d", st.Lives)
	}
	if st.Level > 0 {
		left += fmt.Sprintf("  LEVEL %d", st.Level)
	}
	s.screen.DrawTextColor(0, 0, left, core.ColorBrightWhite)

	var right string
	switch {
	case st.Attract:
		right = "DEMO - press any arrow to play "
	case st.Paused:
		right = "PAUSED "
	}
	if right != "" {
		s.screen.DrawTextColor(s.screen.Width()-len(right), 0, right, core.ColorBrightYellow)
	}
}

func (s *Session) renderFault() {
	lines := []string{
		"The game stopped unexpectedly.",
		s.fault.Error(),
		"Press Esc to return to the menu.",
	}
	y := s.screen.Height()/2 - len(lines)
	for i, line := range lines {
		x := core.Max((s.screen.Width()-len([]rune(line)))/2, 0)
		s.screen.DrawTextColor(x, y+i*2, line, core.ColorBrightRed)
	}
}
