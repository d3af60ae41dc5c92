// Package cube holds the fixed topology of a 3x3x3 puzzle: frames and moves,
// the 26 cell slots with their transitions, the surface vertex lattice and
// the per-face tables derived from it.
package cube

import "strings"

// Net is a flat facelet view of a cube. Each face has 9 facelets indexed in
// the face's scan order:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// A facelet holds the label of the sticker showing there.
type Net struct {
	// Facelets[face][position] = sticker
	Facelets [FaceCount][9]Face
}

// NewNet builds a net from the orientation of whatever piece occupies each
// cell.
func NewNet(occupant func(cell int) Orientation) Net {
	var n Net
	for _, f := range AllFaces {
		for i, cell := range FaceTables[f].Cells {
			n.Facelets[f][i] = occupant(cell)[f]
		}
	}
	return n
}

// SolvedNet returns the net of a solved cube.
func SolvedNet() Net {
	return NewNet(func(int) Orientation { return IdentityOrientation() })
}

// IsSolved reports whether every face shows a single sticker label.
func (n Net) IsSolved() bool {
	for f := range n.Facelets {
		centre := n.Facelets[f][4]
		for _, s := range n.Facelets[f] {
			if s != centre {
				return false
			}
		}
	}
	return true
}

// String renders the net with the top face above the near face and the
// bottom face below it:
//
//	      T
//	L N R F
//	      B
func (n Net) String() string {
	var b strings.Builder

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		n.writeRow(&b, FaceTop, row)
		b.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		for _, f := range []Face{FaceLeft, FaceNear, FaceRight, FaceFront} {
			n.writeRow(&b, f, row)
		}
		b.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		n.writeRow(&b, FaceBottom, row)
		b.WriteString("\n")
	}

	return b.String()
}

func (n Net) writeRow(b *strings.Builder, f Face, row int) {
	for col := 0; col < 3; col++ {
		b.WriteString(n.Facelets[f][row*3+col].String())
		b.WriteString(" ")
	}
}
