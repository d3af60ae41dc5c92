package glitchcube

import (
	"errors"

	"github.com/SeamusWaldron/glitchcube/internal/engine"
)

// Sentinel errors for the glitchcube package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("glitchcube: invalid move notation")

	// State errors
	ErrPaused = errors.New("glitchcube: game is paused")

	// Move rejections from the engine. Callers may treat both as no-ops.
	ErrMoveInFlight = engine.ErrMoveInFlight
	ErrInertLayer   = engine.ErrInertLayer
)
