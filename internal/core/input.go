package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games only ever see actions, never keys or mouse events.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionFire           // Space, mouse click - fire, jump, drop item
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, ? - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Gameplay reports whether the action steers the game itself, as opposed to
// session control (pause, quit, menu navigation).
func (a Action) Gameplay() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight, ActionFire:
		return true
	default:
		return false
	}
}

// InputFrame is the input table a game reads during one simulation tick.
// The same shape is produced by the human latch and by the autopilot.
type InputFrame struct {
	// Actions maps action types to whether they are held this tick.
	Actions map[Action]bool

	// Aim is a pointer position in the game's logical space.
	// Only meaningful when HasAim is set.
	Aim    Vec
	HasAim bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Unset clears a single action.
func (f *InputFrame) Unset(a Action) {
	delete(f.Actions, a)
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetAim records a pointer position.
func (f *InputFrame) SetAim(p Vec) {
	f.Aim = p
	f.HasAim = true
}

// Horizontal returns -1 for left, 1 for right and 0 when neither or both are held.
func (f InputFrame) Horizontal() float64 {
	var d float64
	if f.Has(ActionLeft) {
		d--
	}
	if f.Has(ActionRight) {
		d++
	}
	return d
}

// Vertical returns -1 for up, 1 for down and 0 when neither or both are held.
func (f InputFrame) Vertical() float64 {
	var d float64
	if f.Has(ActionUp) {
		d--
	}
	if f.Has(ActionDown) {
		d++
	}
	return d
}

// Clear resets all actions and the aim.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Aim = Vec{}
	f.HasAim = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Aim = f.Aim
	clone.HasAim = f.HasAim
	return clone
}
