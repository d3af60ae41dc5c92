// Package analysis looks for patterns in played move sequences: pauses and
// pace, wasted turns, repeated sequences and known algorithms.
package analysis

import (
	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

// TimedMove is a turn with its time offset from the start of the game.
type TimedMove struct {
	Move cube.Move
	TsMs int64
}

// Untimed strips timestamps.
func Untimed(moves []TimedMove) []cube.Move {
	out := make([]cube.Move, len(moves))
	for i, m := range moves {
		out[i] = m.Move
	}
	return out
}

// token packs a move into a byte: frame index times two plus direction.
func token(m cube.Move) uint8 {
	t := uint8(m.Frame.Axis)*6 + uint8(m.Frame.Layer)*2
	if m.Dir == cube.Minus {
		t++
	}
	return t
}

func fromToken(t uint8) cube.Move {
	dir := cube.Plus
	if t%2 == 1 {
		dir = cube.Minus
	}
	return cube.NewMove(cube.Axis(t/6), int(t%6)/2, dir)
}
