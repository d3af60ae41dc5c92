package glitchcube

import (
	"fmt"
	"strings"
	"time"

	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

// Face is an outer layer in standard face notation.
type Face string

const (
	FaceR Face = "R" // Right, X layer 2
	FaceL Face = "L" // Left, X layer 0
	FaceU Face = "U" // Up, Y layer 2
	FaceD Face = "D" // Down, Y layer 0
	FaceF Face = "F" // Front (toward the viewer), Z layer 0
	FaceB Face = "B" // Back, Z layer 2
)

// Turn represents the direction and magnitude of a face turn.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// clockwise maps each face to its frame and the frame direction of a
// clockwise turn seen from outside that face.
var clockwise = map[Face]cube.Move{
	FaceR: cube.NewMove(cube.AxisX, 2, cube.Minus),
	FaceL: cube.NewMove(cube.AxisX, 0, cube.Plus),
	FaceU: cube.NewMove(cube.AxisY, 2, cube.Minus),
	FaceD: cube.NewMove(cube.AxisY, 0, cube.Plus),
	FaceF: cube.NewMove(cube.AxisZ, 0, cube.Minus),
	FaceB: cube.NewMove(cube.AxisZ, 2, cube.Plus),
}

// Move is a face-notation move with an optional timestamp.
type Move struct {
	Face Face
	Turn Turn
	Time time.Time
}

// Notation returns the standard notation string: R, R', R2.
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// String returns the notation string.
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse move. Half turns are their own inverse.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// WithTime returns a copy of the move with the given timestamp.
func (m Move) WithTime(t time.Time) Move {
	m.Time = t
	return m
}

// FrameMoves expands the move into quarter turns.
func (m Move) FrameMoves() []cube.Move {
	q, ok := clockwise[m.Face]
	if !ok {
		return nil
	}
	switch m.Turn {
	case CCW:
		return []cube.Move{q.Inverse()}
	case Double:
		return []cube.Move{q, q}
	default:
		return []cube.Move{q}
	}
}

// FromFrameMove converts an outer-layer quarter turn to face notation.
func FromFrameMove(fm cube.Move) (Move, bool) {
	for face, q := range clockwise {
		switch fm {
		case q:
			return Move{Face: face, Turn: CW}, true
		case q.Inverse():
			return Move{Face: face, Turn: CCW}, true
		}
	}
	return Move{}, false
}

// ParseMove parses one face-notation move: R, R', R2, r (lower case is
// accepted as the same face).
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	face := Face(strings.ToUpper(s[:1]))
	if _, ok := clockwise[face]; !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	turn := CW
	switch s[1:] {
	case "":
	case "'", "`":
		turn = CCW
	case "2", "2'", "2`":
		turn = Double
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated face-notation sequence. The first
// invalid token fails the whole sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))
	for _, part := range parts {
		m, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatMoves formats moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// ParseNotation parses a sequence mixing frame notation (X0+) and face
// notation (R'), expanding half turns into two quarter turns.
func ParseNotation(s string) ([]cube.Move, error) {
	var out []cube.Move
	for _, tok := range strings.Fields(s) {
		switch tok[0] {
		case 'X', 'Y', 'Z', 'x', 'y', 'z':
			m, err := cube.ParseMove(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, tok)
			}
			out = append(out, m)
		default:
			m, err := ParseMove(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, m.FrameMoves()...)
		}
	}
	return out, nil
}

// FormatNotation writes quarter turns in face notation where possible,
// falling back to frame notation.
func FormatNotation(moves []cube.Move) string {
	parts := make([]string, len(moves))
	for i, fm := range moves {
		if m, ok := FromFrameMove(fm); ok {
			parts[i] = m.Notation()
		} else {
			parts[i] = fm.String()
		}
	}
	return strings.Join(parts, " ")
}
