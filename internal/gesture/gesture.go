// Package gesture turns a press and a release on the cube into a layer turn.
package gesture

import (
	"log/slog"
	"math"

	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/picker"
)

// DefaultThreshold is the minimum drag in pixels that can turn a layer.
const DefaultThreshold = 60.0

// Picker resolves pixel coordinates to a face cell.
type Picker interface {
	Pick(x, y, w, h float64) picker.Result
}

// Mover accepts move requests.
type Mover interface {
	StartMove(cube.Move) error
}

// Orbiter is the camera input switch.
type Orbiter interface {
	SetEnabled(bool)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithThreshold sets the minimum drag distance in pixels.
func WithThreshold(px float64) Option {
	return func(r *Resolver) {
		if px >= 0 {
			r.threshold = px
		}
	}
}

// WithLogger sets the logger for gesture diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

type press struct {
	face cube.Face
	cell int
	x, y float64
}

// Resolver tracks one pointer gesture at a time.
type Resolver struct {
	picker    Picker
	mover     Mover
	camera    Orbiter
	threshold float64
	logger    *slog.Logger

	width, height float64
	press         *press
}

// New returns a resolver. camera may be nil.
func New(p Picker, m Mover, camera Orbiter, opts ...Option) *Resolver {
	r := &Resolver{
		picker:    p,
		mover:     m,
		camera:    camera,
		threshold: DefaultThreshold,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetViewport sets the pixel size of the pointer surface.
func (r *Resolver) SetViewport(w, h float64) {
	r.width, r.height = w, h
}

// Tracking reports whether a press is being tracked.
func (r *Resolver) Tracking() bool {
	return r.press != nil
}

// Threshold returns the minimum drag distance.
func (r *Resolver) Threshold() float64 {
	return r.threshold
}

// Press starts tracking if the pointer is on the cube. It reports whether
// the press landed on the cube; while tracking, camera orbit is disabled.
func (r *Resolver) Press(x, y float64) bool {
	if r.press != nil {
		return true
	}
	res := r.picker.Pick(x, y, r.width, r.height)
	if !res.Hit {
		return false
	}
	r.press = &press{face: res.Face, cell: res.Cell, x: x, y: y}
	if r.camera != nil {
		r.camera.SetEnabled(false)
	}
	return true
}

// Move resolves early when the pointer reaches a different cell of the same
// face beyond the threshold. Presses on a face centre only resolve on
// release. Leaving the face ends the gesture without a move.
func (r *Resolver) Move(x, y float64) (cube.Move, bool) {
	if r.press == nil || cube.Cells[r.press.cell].Class == cube.PositionFaceCenter {
		return cube.Move{}, false
	}
	res := r.picker.Pick(x, y, r.width, r.height)
	if !res.Hit || res.Face != r.press.face {
		r.finish()
		return cube.Move{}, false
	}
	if res.Cell == r.press.cell || r.distance(x, y) <= r.threshold {
		return cube.Move{}, false
	}
	return r.resolve(res, x, y)
}

// Release ends the gesture and submits the inferred move, if any.
func (r *Resolver) Release(x, y float64) (cube.Move, bool) {
	if r.press == nil {
		return cube.Move{}, false
	}
	return r.resolve(r.picker.Pick(x, y, r.width, r.height), x, y)
}

// Cancel drops the gesture without a move.
func (r *Resolver) Cancel() {
	if r.press != nil {
		r.finish()
	}
}

func (r *Resolver) distance(x, y float64) float64 {
	return math.Hypot(x-r.press.x, y-r.press.y)
}

func (r *Resolver) resolve(res picker.Result, x, y float64) (cube.Move, bool) {
	p := *r.press
	dist := r.distance(x, y)
	r.finish()

	if !res.Hit || res.Face != p.face || res.Cell == p.cell || dist <= r.threshold {
		return cube.Move{}, false
	}
	m, ok := Infer(p.face, p.cell, res.Cell)
	if !ok {
		return cube.Move{}, false
	}
	if err := r.mover.StartMove(m); err != nil {
		r.logger.Debug("gesture move rejected", "move", m.String(), "err", err)
		return m, false
	}
	r.logger.Debug("gesture move", "move", m.String(), "face", p.face.String(), "from", p.cell, "to", res.Cell)
	return m, true
}

func (r *Resolver) finish() {
	r.press = nil
	if r.camera != nil {
		r.camera.SetEnabled(true)
	}
}

// Infer derives the turn for a drag from cell `from` to cell `to` on face.
// The layer that holds both cells turns; its direction is the one whose
// surface motion on the face points the way the drag went. Diagonal drags,
// identical cells and middle layers yield no move.
func Infer(face cube.Face, from, to int) (cube.Move, bool) {
	a, b := cube.Cells[from].Frame, cube.Cells[to].Frame
	normal := face.Normal()

	var varying []cube.Axis
	for _, ax := range cube.Axes {
		if ax != face.Axis() {
			varying = append(varying, ax)
		}
	}

	for _, pair := range [2][2]cube.Axis{{varying[0], varying[1]}, {varying[1], varying[0]}} {
		held, drag := pair[0], pair[1]
		if a[held] != b[held] {
			continue
		}
		delta := b[drag] - a[drag]
		if delta == 0 {
			return cube.Move{}, false
		}
		frame := cube.Frame{Axis: held, Layer: a[held]}
		if !frame.Turnable() {
			return cube.Move{}, false
		}
		// Surface velocity of a plus turn about held, projected on the drag axis.
		s := cube.AxisUnit(held).Cross(normal).Dot(cube.LayerUnit(drag))
		dir := cube.Plus
		if s*delta < 0 {
			dir = cube.Minus
		}
		return cube.Move{Frame: frame, Dir: dir}, true
	}
	return cube.Move{}, false
}
