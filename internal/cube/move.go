package cube

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMove is returned when a frame move string cannot be parsed.
var ErrInvalidMove = errors.New("cube: invalid frame move")

// Axis is one of the three world axes a layer can turn around.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists every axis in index order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Direction is the sense of a quarter turn relative to its axis.
type Direction int

const (
	Plus  Direction = 1
	Minus Direction = -1
)

func (d Direction) String() string {
	if d == Minus {
		return "-"
	}
	return "+"
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return -d
}

// Frame identifies one slice of the cube: an axis and a layer index 0..2.
type Frame struct {
	Axis  Axis
	Layer int
}

// Turnable reports whether the frame is an outer layer. The middle layer
// of every axis is inert.
func (f Frame) Turnable() bool {
	return f.Layer == 0 || f.Layer == 2
}

// Valid reports whether both axis and layer are in range.
func (f Frame) Valid() bool {
	return f.Axis >= AxisX && f.Axis <= AxisZ && f.Layer >= 0 && f.Layer <= 2
}

func (f Frame) String() string {
	return fmt.Sprintf("%s%d", f.Axis, f.Layer)
}

// Move is a quarter turn of one frame.
type Move struct {
	Frame Frame
	Dir   Direction
}

// NewMove builds a move from its parts.
func NewMove(axis Axis, layer int, dir Direction) Move {
	return Move{Frame: Frame{Axis: axis, Layer: layer}, Dir: dir}
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	return Move{Frame: m.Frame, Dir: m.Dir.Reverse()}
}

// String returns the frame notation, e.g. X0+ or Z2-.
func (m Move) String() string {
	return m.Frame.String() + m.Dir.String()
}

// OuterMoves are the twelve turnable quarter turns, in scramble pool order.
var OuterMoves = [12]Move{
	NewMove(AxisX, 0, Plus), NewMove(AxisX, 0, Minus),
	NewMove(AxisY, 0, Plus), NewMove(AxisY, 0, Minus),
	NewMove(AxisZ, 0, Plus), NewMove(AxisZ, 0, Minus),
	NewMove(AxisX, 2, Plus), NewMove(AxisX, 2, Minus),
	NewMove(AxisY, 2, Plus), NewMove(AxisY, 2, Minus),
	NewMove(AxisZ, 2, Plus), NewMove(AxisZ, 2, Minus),
}

// ParseMove parses frame notation such as "X0+" or "y2-".
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 3 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	var axis Axis
	switch s[0] {
	case 'X', 'x':
		axis = AxisX
	case 'Y', 'y':
		axis = AxisY
	case 'Z', 'z':
		axis = AxisZ
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	if s[1] < '0' || s[1] > '2' {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	layer := int(s[1] - '0')

	var dir Direction
	switch s[2] {
	case '+':
		dir = Plus
	case '-':
		dir = Minus
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	return NewMove(axis, layer, dir), nil
}

// ParseMoves parses a whitespace separated list of frame moves.
func ParseMoves(s string) ([]Move, error) {
	fields := strings.Fields(s)
	moves := make([]Move, 0, len(fields))
	for _, f := range fields {
		m, err := ParseMove(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatMoves joins moves with single spaces.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
