// Package sound synthesises the turn cue and plays it through the system
// speaker. Playback is optional: every call is safe before Init and after
// Init fails.
package sound

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	SampleRate  = beep.SampleRate(44100)
	CueDuration = 30 * time.Millisecond
)

// cue is a short falling chirp with an exponential decay.
type cue struct {
	sr  beep.SampleRate
	pos int
}

// NewCue returns a streamer that yields one turn cue and then drains.
func NewCue(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(CueDuration), &cue{sr: sr})
}

func (c *cue) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(c.pos) / float64(c.sr)
		freq := 900 - 600*t/CueDuration.Seconds()
		env := math.Exp(-t * 120)
		s := 0.6 * env * math.Sin(2*math.Pi*freq*t)
		samples[i][0] = s
		samples[i][1] = s
		c.pos++
	}
	return len(samples), true
}

func (c *cue) Err() error {
	return nil
}

// Player mixes cues into the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
	logger      *slog.Logger
}

// NewPlayer returns a player that stays silent until Init succeeds.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	mixer := &beep.Mixer{}
	return &Player{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2},
		logger: logger,
	}
}

// Init opens the speaker. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to open speaker: %w", err)
	}
	speaker.Play(p.volume)
	p.initialized = true
	p.logger.Debug("speaker ready", "rate", int(SampleRate))
	return nil
}

// PlayCue queues one turn cue.
func (p *Player) PlayCue() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(NewCue(SampleRate))
	speaker.Unlock()
}

// SetMuted silences or restores output without dropping queued cues.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.volume.Silent = muted
}

// Muted reports whether output is silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume.Silent
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
