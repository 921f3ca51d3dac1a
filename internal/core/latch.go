package core

// DefaultHoldTicks is how long a key press stays latched without a release.
// Terminals deliver key-repeat events but never key-up, so a held key is
// kept alive by repeats arriving faster than this window.
const DefaultHoldTicks = 9

// Latch converts discrete press/release events into a persistent pressed
// table keyed by action. It is written by event handlers between ticks and
// read once per tick through Frame.
type Latch struct {
	holdTicks int
	held      map[Action]int // remaining ticks, -1 until released
	pulses    map[Action]bool
	aim       Vec
	hasAim    bool
}

// NewLatch creates a latch. holdTicks <= 0 keeps presses until Release.
func NewLatch(holdTicks int) *Latch {
	return &Latch{
		holdTicks: holdTicks,
		held:      make(map[Action]int),
		pulses:    make(map[Action]bool),
	}
}

// Press marks an action as held. Repeated presses refresh the hold window.
func (l *Latch) Press(a Action) {
	if a == ActionNone {
		return
	}
	if l.holdTicks <= 0 {
		l.held[a] = -1
		return
	}
	l.held[a] = l.holdTicks
}

// Release clears a held action immediately.
func (l *Latch) Release(a Action) {
	delete(l.held, a)
}

// Pulse latches an action for exactly the next frame.
func (l *Latch) Pulse(a Action) {
	if a == ActionNone {
		return
	}
	l.pulses[a] = true
}

// Aim records the latest pointer position.
func (l *Latch) Aim(p Vec) {
	l.aim = p
	l.hasAim = true
}

// Held reports whether an action is currently latched.
func (l *Latch) Held(a Action) bool {
	_, ok := l.held[a]
	return ok || l.pulses[a]
}

// Frame returns the input table for the coming tick.
func (l *Latch) Frame() InputFrame {
	f := NewInputFrame()
	for a := range l.held {
		f.Set(a)
	}
	for a := range l.pulses {
		f.Set(a)
	}
	if l.hasAim {
		f.SetAim(l.aim)
	}
	return f
}

// Tick ages held actions by one tick and drops pulses.
func (l *Latch) Tick() {
	for a, n := range l.held {
		if n < 0 {
			continue
		}
		if n <= 1 {
			delete(l.held, a)
			continue
		}
		l.held[a] = n - 1
	}
	for a := range l.pulses {
		delete(l.pulses, a)
	}
}

// Reset releases everything, including the aim.
func (l *Latch) Reset() {
	for a := range l.held {
		delete(l.held, a)
	}
	for a := range l.pulses {
		delete(l.pulses, a)
	}
	l.aim = Vec{}
	l.hasAim = false
}
