// Package engine owns the 26 pieces of the puzzle and applies quarter turns
// to them. It is the only place piece positions and orientations change.
package engine

import (
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

// Sentinel errors. Callers treat the StartMove rejections as no-ops.
var (
	ErrMoveInFlight   = errors.New("engine: a move is already animating")
	ErrInertLayer     = errors.New("engine: middle layer cannot turn")
	ErrInvalidFrame   = errors.New("engine: frame out of range")
	ErrNoMoveInFlight = errors.New("engine: no move in flight")
)

// Swing is the presentation-only state of a piece during a turn. The turn
// animator writes it; EndMove clears it.
type Swing struct {
	Active   bool
	Angle    float64 // signed degrees about the turning axis
	Position mgl64.Vec3
}

// Piece is one physical sub-cube.
type Piece struct {
	Home        int
	Cell        int
	Orientation cube.Orientation
	Swing       Swing
}

// Engine holds the puzzle state. It is not safe for concurrent use; all
// calls happen on the tick goroutine.
type Engine struct {
	pieces [cube.CellCount]Piece

	active    []int
	move      cube.Move
	animating bool

	muted   bool
	count   int
	history []cube.Move

	rng         *rand.Rand
	scrambleMin int
	scrambleMax int
	sequence    func() []cube.Move
	logger      *slog.Logger

	onMoveStart func(cube.Move)
	onMoveEnd   func(cube.Move, bool)
	onSolved    func()
}

// New creates an engine with every piece at home. The cube is solved until
// Scramble or a move is applied.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	e := &Engine{
		rng:         cfg.rng,
		scrambleMin: cfg.scrambleMin,
		scrambleMax: cfg.scrambleMax,
		logger:      cfg.logger,
	}
	e.sequence = e.randomSequence
	e.restore()
	return e
}

func (e *Engine) restore() {
	for i := range e.pieces {
		e.pieces[i] = Piece{
			Home:        i,
			Cell:        i,
			Orientation: cube.IdentityOrientation(),
		}
	}
	e.active = e.active[:0]
	e.animating = false
	e.move = cube.Move{}
}

// OnMoveStart registers a callback fired when an unmuted move starts.
func (e *Engine) OnMoveStart(fn func(cube.Move)) {
	e.onMoveStart = fn
}

// OnMoveEnd registers a callback fired after every unmuted commit with the
// solved status.
func (e *Engine) OnMoveEnd(fn func(cube.Move, bool)) {
	e.onMoveEnd = fn
}

// OnSolved registers a callback fired when an unmuted commit solves the cube.
func (e *Engine) OnSolved(fn func()) {
	e.onSolved = fn
}

// StartMove begins a quarter turn of one outer frame. It collects the
// pieces in the frame and marks the engine as animating.
func (e *Engine) StartMove(m cube.Move) error {
	if e.animating {
		return ErrMoveInFlight
	}
	if !m.Frame.Valid() {
		return ErrInvalidFrame
	}
	if !m.Frame.Turnable() {
		return ErrInertLayer
	}

	e.active = e.active[:0]
	for i, p := range e.pieces {
		if cube.Cells[p.Cell].InFrame(m.Frame) {
			e.active = append(e.active, i)
		}
	}
	e.move = m
	e.animating = true

	if !e.muted {
		e.logger.Debug("move started", "move", m.String(), "pieces", len(e.active))
		if e.onMoveStart != nil {
			e.onMoveStart(m)
		}
	}
	return nil
}

// TryStartMove is StartMove for callers that only need accepted/rejected.
func (e *Engine) TryStartMove(m cube.Move) bool {
	return e.StartMove(m) == nil
}

// EndMove commits the move in flight: every active piece moves to its
// transition cell and its orientation turns with it. It returns whether the
// cube is now solved.
func (e *Engine) EndMove() (bool, error) {
	if !e.animating {
		return false, ErrNoMoveInFlight
	}

	axis, dir := e.move.Frame.Axis, e.move.Dir
	for _, i := range e.active {
		p := &e.pieces[i]
		p.Cell = cube.Cells[p.Cell].Next(axis, dir)
		p.Orientation = p.Orientation.Turn(axis, dir)
		p.Swing = Swing{}
	}

	m := e.move
	e.active = e.active[:0]
	e.animating = false
	e.move = cube.Move{}

	solved := e.IsSolved()
	if e.muted {
		return solved, nil
	}

	e.count++
	e.history = append(e.history, m)
	e.logger.Debug("move committed", "move", m.String(), "count", e.count, "solved", solved)

	if e.onMoveEnd != nil {
		e.onMoveEnd(m, solved)
	}
	if solved && e.onSolved != nil {
		e.onSolved()
	}
	return solved, nil
}

// Apply performs moves instantly, without animation. It stops at the first
// rejected move.
func (e *Engine) Apply(moves ...cube.Move) error {
	for _, m := range moves {
		if err := e.StartMove(m); err != nil {
			return err
		}
		if _, err := e.EndMove(); err != nil {
			return err
		}
	}
	return nil
}

// IsSolved reports whether every piece sits in its home cell.
func (e *Engine) IsSolved() bool {
	for _, p := range e.pieces {
		if p.Cell != p.Home {
			return false
		}
	}
	return true
}

// Reset restores the solved state, scrambles it and zeroes the move
// counter. It returns the scramble applied.
func (e *Engine) Reset() []cube.Move {
	e.restore()
	scramble := e.Scramble()
	e.count = 0
	e.history = nil
	return scramble
}

// Restore puts every piece home without scrambling and zeroes the counter.
func (e *Engine) Restore() {
	e.restore()
	e.count = 0
	e.history = nil
}

// MoveCount returns the number of committed unmuted moves.
func (e *Engine) MoveCount() int {
	return e.count
}

// History returns the committed unmuted moves since the last reset.
func (e *Engine) History() []cube.Move {
	out := make([]cube.Move, len(e.history))
	copy(out, e.history)
	return out
}

// Animating reports whether a move is in flight.
func (e *Engine) Animating() bool {
	return e.animating
}

// CurrentMove returns the move in flight.
func (e *Engine) CurrentMove() (cube.Move, bool) {
	return e.move, e.animating
}

// Active returns the indices of the pieces in the turning frame.
func (e *Engine) Active() []int {
	out := make([]int, len(e.active))
	copy(out, e.active)
	return out
}

// UpdateActive calls fn with every piece of the turning frame. fn may only
// change the piece's Swing.
func (e *Engine) UpdateActive(fn func(p *Piece)) {
	for _, i := range e.active {
		p := &e.pieces[i]
		cell, orient := p.Cell, p.Orientation
		fn(p)
		p.Cell, p.Orientation = cell, orient
	}
}

// Piece returns a copy of piece i.
func (e *Engine) Piece(i int) Piece {
	return e.pieces[i]
}

// Pieces returns a copy of all pieces.
func (e *Engine) Pieces() [cube.CellCount]Piece {
	return e.pieces
}

// Occupant returns the piece currently in a cell.
func (e *Engine) Occupant(cell int) (Piece, bool) {
	for _, p := range e.pieces {
		if p.Cell == cell {
			return p, true
		}
	}
	return Piece{}, false
}

// Net returns the facelet net of the current state.
func (e *Engine) Net() cube.Net {
	var byCell [cube.CellCount]cube.Orientation
	for _, p := range e.pieces {
		byCell[p.Cell] = p.Orientation
	}
	return cube.NewNet(func(cell int) cube.Orientation { return byCell[cell] })
}
