package engine

import (
	"log/slog"
	"math/rand/v2"
	"time"
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	rng         *rand.Rand
	scrambleMin int
	scrambleMax int
	logger      *slog.Logger
}

func defaultConfig() *config {
	seed := uint64(time.Now().UnixNano())
	return &config{
		rng:         rand.New(rand.NewPCG(seed, seed>>1|1)),
		scrambleMin: DefaultScrambleMin,
		scrambleMax: DefaultScrambleMax,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// WithRand sets the random source used for scrambles.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithSeed makes scrambles reproducible.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithScrambleLength bounds the number of scramble turns. Values below 1 or
// a max below min are ignored.
func WithScrambleLength(min, max int) Option {
	return func(c *config) {
		if min < 1 || max < min {
			return
		}
		c.scrambleMin = min
		c.scrambleMax = max
	}
}

// WithLogger sets the logger for move diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
