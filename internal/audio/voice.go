package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// floorGain is where every cue's envelope ends.
const floorGain = 0.01

// envelope selects how a voice fades out.
type envelope int

const (
	envExponential envelope = iota // tones and noise
	envLinear                      // sweeps
)

// voice is a one-shot streamer: an oscillator or noise source whose
// frequency may glide linearly, shaped by a fade from vol down to floorGain.
type voice struct {
	rate  beep.SampleRate
	from  float64
	to    float64
	wave  core.Waveform
	noise *rand.Rand // nil for pitched voices
	vol   float64
	env   envelope
	phase float64
	pos   int
	total int
}

func newTone(rate beep.SampleRate, freq, dur float64, wave core.Waveform, vol float64) *voice {
	return &voice{rate: rate, from: freq, to: freq, wave: wave, vol: vol, env: envExponential, total: samplesFor(rate, dur)}
}

func newSweep(rate beep.SampleRate, from, to, dur float64, wave core.Waveform, vol float64) *voice {
	return &voice{rate: rate, from: from, to: to, wave: wave, vol: vol, env: envLinear, total: samplesFor(rate, dur)}
}

func newNoise(rate beep.SampleRate, dur, vol float64, rng *rand.Rand) *voice {
	return &voice{rate: rate, noise: rng, vol: vol, env: envExponential, total: samplesFor(rate, dur)}
}

func samplesFor(rate beep.SampleRate, dur float64) int {
	if math.IsNaN(dur) || dur <= 0 {
		return 0
	}
	return rate.N(time.Duration(dur * float64(time.Second)))
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.pos >= v.total {
			return i, i > 0
		}
		t := float64(v.pos) / float64(v.total)

		var val float64
		if v.noise != nil {
			val = v.noise.Float64()*2 - 1
		} else {
			val = shape(v.wave, v.phase)
			freq := v.from + (v.to-v.from)*t
			v.phase += freq / float64(v.rate)
			v.phase -= math.Floor(v.phase)
		}
		val *= v.gain(t)

		samples[i][0] = val
		samples[i][1] = val
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// gain returns the envelope level at t in [0, 1).
func (v *voice) gain(t float64) float64 {
	if v.vol <= floorGain {
		return v.vol
	}
	if v.env == envLinear {
		return v.vol + (floorGain-v.vol)*t
	}
	return v.vol * math.Pow(floorGain/v.vol, t)
}

// shape evaluates one period of a waveform at phase p in [0, 1).
func shape(w core.Waveform, p float64) float64 {
	switch w {
	case core.WaveSine:
		return math.Sin(2 * math.Pi * p)
	case core.WaveTriangle:
		return 4*math.Abs(p-0.5) - 1
	case core.WaveSawtooth:
		return 2*p - 1
	default:
		if p < 0.5 {
			return 1
		}
		return -1
	}
}

// withVolume applies the master volume.
// math.Log2(0) is -Inf, so zero volume is expressed as Silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
