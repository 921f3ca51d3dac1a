package core

// Waveform selects the oscillator shape for tones and sweeps.
type Waveform int

const (
	WaveSquare Waveform = iota
	WaveSine
	WaveTriangle
	WaveSawtooth
)

// String returns the waveform name.
func (w Waveform) String() string {
	switch w {
	case WaveSquare:
		return "square"
	case WaveSine:
		return "sine"
	case WaveTriangle:
		return "triangle"
	case WaveSawtooth:
		return "sawtooth"
	default:
		return "unknown"
	}
}

// Cue volumes used when a sound has no volume of its own.
const (
	ToneVolume  = 0.1
	NoiseVolume = 0.2
	SweepVolume = 0.1
)

// Signal is the fire-and-forget sound interface games call from Step.
// Durations are in seconds, volumes in [0, 1]. Implementations must never
// block the caller and must swallow their own failures.
type Signal interface {
	Tone(freq, dur float64, wave Waveform, vol float64)
	Noise(dur, vol float64)
	Sweep(from, to, dur float64, wave Waveform, vol float64)
}

// Silent is a Signal that does nothing.
type Silent struct{}

func (Silent) Tone(float64, float64, Waveform, float64)           {}
func (Silent) Noise(float64, float64)                             {}
func (Silent) Sweep(float64, float64, float64, Waveform, float64) {}
