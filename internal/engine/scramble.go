package engine

import "github.com/SeamusWaldron/glitchcube/internal/cube"

// Scramble length bounds.
const (
	DefaultScrambleMin = 20
	DefaultScrambleMax = 100
)

// fallbackScramble is applied when a random scramble happens to leave the
// cube solved. It is known to leave the cube unsolved.
var fallbackScramble = mustParse(
	"X0- Z2+ Z2+ Y0+ Z2- Y0- Y0- " +
		"Z2+ Y2+ Z0+ Z0+ Y2- Z0+ Z0+ " +
		"Y0- Y0- Z0+ Z0+ X0+ Z0+ Z0+ " +
		"Y2+ Z0- Y0- X2+ Y2+ Z0- Y2- " +
		"Y2- Z0+ Z2+ Z2+ X0- X0- Z0-")

// FallbackScramble returns a copy of the fixed fallback sequence.
func FallbackScramble() []cube.Move {
	out := make([]cube.Move, len(fallbackScramble))
	copy(out, fallbackScramble)
	return out
}

// Scramble applies a random sequence of outer-layer quarter turns instantly
// and without firing move hooks. A move never directly undoes the previous
// one. If the result is solved the pieces are restored and the fallback
// sequence is applied instead. It returns the sequence that was applied.
func (e *Engine) Scramble() []cube.Move {
	if e.animating {
		return nil
	}

	e.muted = true
	defer func() { e.muted = false }()

	moves := e.sequence()
	e.mustApply(moves)

	if e.IsSolved() {
		e.logger.Debug("scramble left cube solved, using fallback", "length", len(moves))
		e.restore()
		moves = FallbackScramble()
		e.mustApply(moves)
	}

	e.logger.Debug("scrambled", "length", len(moves))
	return moves
}

func (e *Engine) randomSequence() []cube.Move {
	n := e.scrambleMin + e.rng.IntN(e.scrambleMax-e.scrambleMin+1)
	moves := make([]cube.Move, 0, n)

	var last cube.Move
	for i := 0; i < n; i++ {
		m := cube.OuterMoves[e.rng.IntN(len(cube.OuterMoves))]
		if i > 0 && m == last.Inverse() {
			pool := make([]cube.Move, 0, len(cube.OuterMoves)-2)
			for _, c := range cube.OuterMoves {
				if c.Frame != last.Frame {
					pool = append(pool, c)
				}
			}
			m = pool[e.rng.IntN(len(pool))]
		}
		moves = append(moves, m)
		last = m
	}
	return moves
}

func (e *Engine) mustApply(moves []cube.Move) {
	if err := e.Apply(moves...); err != nil {
		// Only outer-layer moves reach here and nothing is animating.
		panic(err)
	}
}

func mustParse(s string) []cube.Move {
	moves, err := cube.ParseMoves(s)
	if err != nil {
		panic(err)
	}
	return moves
}
