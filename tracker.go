package glitchcube

import (
	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/engine"
)

// Tracker replays moves on its own engine without animation and watches
// progress toward the solved state.
type Tracker struct {
	engine   *engine.Engine
	applied  int
	best     int // monotonic
	solvedAt int

	progressCallback func(placed int)
}

// NewTracker creates a tracker starting from a solved cube with scramble
// applied.
func NewTracker(scramble []cube.Move) (*Tracker, error) {
	e := engine.New()
	if err := e.Apply(scramble...); err != nil {
		return nil, err
	}
	t := &Tracker{engine: e, solvedAt: -1}
	t.best = t.Placed()
	if e.IsSolved() {
		t.solvedAt = 0
	}
	return t, nil
}

// SetProgressCallback sets a callback that fires whenever more pieces are
// home than ever before.
func (t *Tracker) SetProgressCallback(cb func(placed int)) {
	t.progressCallback = cb
}

// Apply applies one move and checks progress.
func (t *Tracker) Apply(m cube.Move) error {
	if err := t.engine.Apply(m); err != nil {
		return err
	}
	t.applied++

	placed := t.Placed()
	if placed > t.best {
		t.best = placed
		if t.progressCallback != nil {
			t.progressCallback(placed)
		}
	}
	if t.solvedAt < 0 && t.engine.IsSolved() {
		t.solvedAt = t.applied
	}
	return nil
}

// ApplyAll applies moves in order, stopping at the first error.
func (t *Tracker) ApplyAll(moves []cube.Move) error {
	for _, m := range moves {
		if err := t.Apply(m); err != nil {
			return err
		}
	}
	return nil
}

// Placed returns how many pieces sit in their home cell.
func (t *Tracker) Placed() int {
	n := 0
	for _, p := range t.engine.Pieces() {
		if p.Cell == p.Home {
			n++
		}
	}
	return n
}

// BestPlaced returns the highest Placed value seen.
func (t *Tracker) BestPlaced() int {
	return t.best
}

// SolvedAt returns the number of applied moves after which the cube was
// first solved.
func (t *Tracker) SolvedAt() (int, bool) {
	return t.solvedAt, t.solvedAt >= 0
}

// IsSolved reports whether the cube is solved now.
func (t *Tracker) IsSolved() bool {
	return t.engine.IsSolved()
}

// Net returns the facelet net.
func (t *Tracker) Net() cube.Net {
	return t.engine.Net()
}
