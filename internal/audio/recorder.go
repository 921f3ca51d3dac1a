package audio

import (
	"sync"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// CueKind identifies which Signal method produced a cue.
type CueKind int

const (
	CueTone CueKind = iota
	CueNoise
	CueSweep
)

// Cue is one recorded sound request.
type Cue struct {
	Kind CueKind
	Freq float64 // Start frequency; zero for noise
	To   float64 // End frequency for sweeps
	Dur  float64
	Wave core.Waveform
	Vol  float64
}

// Recorder is a core.Signal that stores every cue instead of playing it.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

var _ core.Signal = (*Recorder)(nil)

func (r *Recorder) Tone(freq, dur float64, wave core.Waveform, vol float64) {
	r.add(Cue{Kind: CueTone, Freq: freq, To: freq, Dur: dur, Wave: wave, Vol: vol})
}

func (r *Recorder) Noise(dur, vol float64) {
	r.add(Cue{Kind: CueNoise, Dur: dur, Vol: vol})
}

func (r *Recorder) Sweep(from, to, dur float64, wave core.Waveform, vol float64) {
	r.add(Cue{Kind: CueSweep, Freq: from, To: to, Dur: dur, Wave: wave, Vol: vol})
}

func (r *Recorder) add(c Cue) {
	r.mu.Lock()
	r.cues = append(r.cues, c)
	r.mu.Unlock()
}

// Cues returns a copy of everything recorded so far.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cue, len(r.cues))
	copy(out, r.cues)
	return out
}

// Count returns how many cues of a kind were recorded.
func (r *Recorder) Count(kind CueKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.cues {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets all recorded cues.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cues = nil
	r.mu.Unlock()
}
