// Package audio turns the games' sound cues into sound.
//
// Player synthesizes tones, noise bursts and sweeps with beep and plays them
// on the system speaker. Audio is optional: every failure is swallowed and
// the Player degrades to silence. Recorder captures cues for tests.
package audio

import (
	"io"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

const (
	DefaultSampleRate = 44100
	DefaultVolume     = 0.8
	DefaultMaxVoices  = 16

	bufferDuration = 100 * time.Millisecond
)

// output is the device the mixer is attached to.
type output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Clear()                  { speaker.Clear() }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }

type deviceState int

const (
	deviceUnknown deviceState = iota
	deviceReady
	deviceFailed
)

// Options configures a Player.
type Options struct {
	SampleRate int
	Volume     float64 // Master volume in [0, 1]
	MaxVoices  int     // Cues beyond this many playing at once are dropped
	Muted      bool
	Logger     *log.Logger
}

// Player is a core.Signal backed by the system speaker.
// The device is opened lazily on the first cue.
type Player struct {
	mu        sync.Mutex
	out       output
	rate      beep.SampleRate
	mixer     *beep.Mixer
	volume    float64
	maxVoices int
	muted     bool
	state     deviceState
	rng       *rand.Rand
	logger    *log.Logger
}

var _ core.Signal = (*Player)(nil)

// NewPlayer creates a player on the system speaker.
func NewPlayer(opts Options) *Player {
	return newPlayer(speakerOutput{}, opts)
}

func newPlayer(out output, opts Options) *Player {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.MaxVoices <= 0 {
		opts.MaxVoices = DefaultMaxVoices
	}
	if math.IsNaN(opts.Volume) {
		opts.Volume = DefaultVolume
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		out:       out,
		rate:      beep.SampleRate(opts.SampleRate),
		mixer:     &beep.Mixer{},
		volume:    core.ClampF(opts.Volume, 0, 1),
		maxVoices: opts.MaxVoices,
		muted:     opts.Muted,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:    logger.WithPrefix("audio"),
	}
}

// Tone plays a fixed-pitch note that decays exponentially.
func (p *Player) Tone(freq, dur float64, wave core.Waveform, vol float64) {
	p.play(func() beep.Streamer { return newTone(p.rate, freq, dur, wave, vol) })
}

// Noise plays a burst of white noise that decays exponentially.
func (p *Player) Noise(dur, vol float64) {
	p.play(func() beep.Streamer {
		return newNoise(p.rate, dur, vol, rand.New(rand.NewSource(p.rng.Int63())))
	})
}

// Sweep glides linearly from one frequency to another while fading out.
func (p *Player) Sweep(from, to, dur float64, wave core.Waveform, vol float64) {
	p.play(func() beep.Streamer { return newSweep(p.rate, from, to, dur, wave, vol) })
}

// SetMuted silences or restores all cues.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	if muted && p.state == deviceReady {
		p.out.Lock()
		p.mixer.Clear()
		p.out.Unlock()
	}
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Available reports whether the device has been opened successfully.
func (p *Player) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == deviceReady
}

// Retry lets the next cue try to open the device again after a failure.
// Hosts call it on a user gesture, mirroring how browsers unlock audio.
func (p *Player) Retry() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == deviceFailed {
		p.state = deviceUnknown
	}
}

// Close stops every playing cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != deviceReady {
		return
	}
	p.out.Lock()
	p.mixer.Clear()
	p.out.Unlock()
	p.out.Clear()
	p.state = deviceUnknown
}

func (p *Player) play(build func() beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted || p.volume <= 0 || !p.open() {
		return
	}
	s := withVolume(build(), p.volume)

	p.out.Lock()
	defer p.out.Unlock()
	if p.mixer.Len() >= p.maxVoices {
		return
	}
	p.mixer.Add(s)
}

// open initializes the device once. Callers hold p.mu.
func (p *Player) open() bool {
	switch p.state {
	case deviceReady:
		return true
	case deviceFailed:
		return false
	}
	if err := p.out.Init(p.rate, p.rate.N(bufferDuration)); err != nil {
		p.state = deviceFailed
		p.logger.Debug("audio unavailable", "err", err)
		return false
	}
	p.out.Play(p.mixer)
	p.state = deviceReady
	p.logger.Debug("audio device opened", "rate", int(p.rate))
	return true
}
