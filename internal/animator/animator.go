// Package animator sweeps the turning layer from 0 to 90 degrees over
// successive ticks and commits the move when the sweep completes.
package animator

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/engine"
)

// DefaultSpeed is the sweep in degrees per 1/60 s.
const DefaultSpeed = 2.0

// Turning radii by position class.
var (
	CornerRadius = cube.CellStep * math.Sqrt2
	EdgeRadius   = float64(cube.CellStep)
)

// Ratio normalizes a tick duration to 60 equivalent ticks per second. The
// duration is clamped to [1ms, 1s].
func Ratio(elapsed time.Duration) float64 {
	ms := float64(elapsed) / float64(time.Millisecond)
	ms = mgl64.Clamp(ms, 1, 1000)
	return ms * 60 / 1000
}

// Radius returns the turning radius of a position class.
func Radius(class cube.PositionClass) float64 {
	switch class {
	case cube.PositionCorner:
		return CornerRadius
	case cube.PositionEdge:
		return EdgeRadius
	default:
		return 0
	}
}

// Animator advances the move in flight of an engine.
type Animator struct {
	engine *engine.Engine
	speed  float64
	angle  float64
}

// New returns an animator for e. A speed of zero or less selects
// DefaultSpeed.
func New(e *engine.Engine, speed float64) *Animator {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Animator{engine: e, speed: speed}
}

// Angle returns the sweep accumulated for the current move.
func (a *Animator) Angle() float64 {
	return a.angle
}

// Reset drops any accumulated sweep. Call it when the engine abandons the
// move in flight.
func (a *Animator) Reset() {
	a.angle = 0
}

// Tick advances the sweep by speed x Ratio(elapsed). When the sweep reaches
// 90 degrees it commits the move. It reports whether a move was committed
// and whether the cube is solved afterwards. With no move in flight it does
// nothing.
func (a *Animator) Tick(elapsed time.Duration) (committed, solved bool) {
	m, ok := a.engine.CurrentMove()
	if !ok {
		a.angle = 0
		return false, false
	}

	a.angle += a.speed * Ratio(elapsed)
	if a.angle >= 90 {
		a.angle = 0
		solved, err := a.engine.EndMove()
		return err == nil, solved
	}

	signed := a.angle * float64(m.Dir)
	axis := m.Frame.Axis
	a.engine.UpdateActive(func(p *engine.Piece) {
		cell := cube.Cells[p.Cell]
		p.Swing = engine.Swing{
			Active:   true,
			Angle:    signed,
			Position: arcPosition(cell, axis, signed),
		}
	})
	return false, false
}

// arcPosition places a piece on the circle its cell centre sweeps around
// the axis, offset by the signed sweep angle.
func arcPosition(c cube.Cell, axis cube.Axis, signed float64) mgl64.Vec3 {
	centre := c.Center().Vec3()
	r := Radius(c.Class)
	theta := mgl64.DegToRad(c.RotationAngle[axis] + signed)
	s, co := math.Sincos(theta)

	switch axis {
	case cube.AxisX:
		return mgl64.Vec3{centre.X(), r * s, -r * co}
	case cube.AxisY:
		return mgl64.Vec3{r * co, centre.Y(), -r * s}
	default:
		return mgl64.Vec3{r * co, r * s, centre.Z()}
	}
}
