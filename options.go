package glitchcube

import (
	"log/slog"

	"github.com/SeamusWaldron/glitchcube/internal/animator"
	"github.com/SeamusWaldron/glitchcube/internal/camera"
	"github.com/SeamusWaldron/glitchcube/internal/engine"
	"github.com/SeamusWaldron/glitchcube/internal/gesture"
)

// Option configures Game behavior.
type Option func(*config)

type config struct {
	seed        uint64
	seeded      bool
	scramble    bool
	scrambleMin int
	scrambleMax int

	dragThreshold float64
	turnSpeed     float64
	pose          camera.Pose
	preset        string
	width, height float64

	logger *slog.Logger
}

func defaultConfig() *config {
	return &config{
		scramble:      true,
		scrambleMin:   engine.DefaultScrambleMin,
		scrambleMax:   engine.DefaultScrambleMax,
		dragThreshold: gesture.DefaultThreshold,
		turnSpeed:     animator.DefaultSpeed,
		pose:          camera.DefaultPose,
		preset:        "default",
		width:         800,
		height:        600,
	}
}

// WithSeed makes scrambles reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithScrambleLength bounds the number of scramble turns (default 20 to 100).
func WithScrambleLength(min, max int) Option {
	return func(c *config) {
		if min < 1 || max < min {
			return
		}
		c.scrambleMin = min
		c.scrambleMax = max
	}
}

// WithoutScramble starts and resets to a solved cube.
func WithoutScramble() Option {
	return func(c *config) {
		c.scramble = false
	}
}

// WithDragThreshold sets the minimum drag in pixels that can turn a layer.
func WithDragThreshold(px float64) Option {
	return func(c *config) {
		if px >= 0 {
			c.dragThreshold = px
		}
	}
}

// WithTurnSpeed sets the sweep in degrees per 60 Hz tick.
func WithTurnSpeed(deg float64) Option {
	return func(c *config) {
		if deg > 0 {
			c.turnSpeed = deg
		}
	}
}

// WithCameraPreset selects the starting camera: "default" or "iso".
func WithCameraPreset(name string) Option {
	return func(c *config) {
		c.pose = camera.PoseByName(name)
		c.preset = presetName(name)
	}
}

// WithViewport sets the pointer surface size in pixels.
func WithViewport(w, h float64) Option {
	return func(c *config) {
		if w > 0 && h > 0 {
			c.width, c.height = w, h
		}
	}
}

// WithLogger overrides the package logger for one game. Without it the
// game uses Logger() as it is when New runs.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func presetName(name string) string {
	if name == "iso" {
		return name
	}
	return "default"
}
