package cube

import (
	"math"
	"sort"
	"strings"
	"testing"
)

// Reference table for the 26 cells: transitions as {plus, minus} per axis,
// rotation angles, position class and exposed faces.
var referenceCells = []struct {
	transition [3][2]int
	angle      [3]float64
	class      PositionClass
	faces      string
}{
	{[3][2]int{{6, 17}, {2, 17}, {6, 2}}, [3]float64{135, 225, 135}, 1, "LTN"},
	{[3][2]int{{7, 18}, {11, 9}, {3, 5}}, [3]float64{135, 270, 90}, 2, "TN"},
	{[3][2]int{{8, 19}, {19, 0}, {0, 8}}, [3]float64{135, 315, 45}, 1, "RTN"},
	{[3][2]int{{14, 9}, {5, 20}, {7, 1}}, [3]float64{180, 225, 180}, 2, "LN"},
	{[3][2]int{{15, 10}, {13, 12}, {4, 4}}, [3]float64{180, 270, 0}, 3, "N"},
	{[3][2]int{{16, 11}, {22, 3}, {1, 7}}, [3]float64{180, 315, 0}, 2, "RN"},
	{[3][2]int{{23, 0}, {8, 23}, {8, 0}}, [3]float64{225, 225, 225}, 1, "LBN"},
	{[3][2]int{{24, 1}, {16, 14}, {5, 3}}, [3]float64{225, 270, 270}, 2, "BN"},
	{[3][2]int{{25, 2}, {25, 6}, {2, 6}}, [3]float64{225, 315, 315}, 1, "RBN"},
	{[3][2]int{{3, 20}, {1, 18}, {14, 11}}, [3]float64{90, 180, 135}, 2, "LT"},
	{[3][2]int{{4, 21}, {10, 10}, {12, 13}}, [3]float64{90, 0, 90}, 3, "T"},
	{[3][2]int{{5, 22}, {18, 1}, {9, 16}}, [3]float64{90, 0, 45}, 2, "RT"},
	{[3][2]int{{12, 12}, {4, 21}, {15, 10}}, [3]float64{0, 180, 180}, 3, "L"},
	{[3][2]int{{13, 13}, {21, 4}, {10, 15}}, [3]float64{0, 0, 0}, 3, "R"},
	{[3][2]int{{20, 3}, {7, 24}, {16, 9}}, [3]float64{270, 180, 225}, 2, "LB"},
	{[3][2]int{{21, 4}, {15, 15}, {13, 12}}, [3]float64{270, 0, 270}, 3, "B"},
	{[3][2]int{{22, 5}, {24, 7}, {11, 14}}, [3]float64{270, 0, 315}, 2, "RB"},
	{[3][2]int{{0, 23}, {0, 19}, {23, 19}}, [3]float64{45, 135, 135}, 1, "LTF"},
	{[3][2]int{{1, 24}, {9, 11}, {20, 22}}, [3]float64{45, 90, 90}, 2, "TF"},
	{[3][2]int{{2, 25}, {17, 2}, {17, 25}}, [3]float64{45, 45, 45}, 1, "RTF"},
	{[3][2]int{{9, 14}, {3, 22}, {24, 18}}, [3]float64{0, 135, 180}, 2, "LF"},
	{[3][2]int{{10, 15}, {12, 13}, {21, 21}}, [3]float64{0, 90, 0}, 3, "F"},
	{[3][2]int{{11, 16}, {20, 5}, {18, 24}}, [3]float64{0, 45, 0}, 2, "RF"},
	{[3][2]int{{17, 6}, {6, 25}, {25, 17}}, [3]float64{315, 135, 225}, 1, "LBF"},
	{[3][2]int{{18, 7}, {14, 16}, {22, 20}}, [3]float64{315, 90, 270}, 2, "BF"},
	{[3][2]int{{19, 8}, {23, 8}, {19, 23}}, [3]float64{315, 45, 315}, 1, "RBF"},
}

func sortedLetters(s string) string {
	letters := strings.Split(s, "")
	sort.Strings(letters)
	return strings.Join(letters, "")
}

func TestCellsMatchReferenceTable(t *testing.T) {
	if len(referenceCells) != CellCount {
		t.Fatalf("reference table has %d cells, want %d", len(referenceCells), CellCount)
	}
	for i, ref := range referenceCells {
		c := Cells[i]
		if c.Index != i {
			t.Errorf("cell %d: Index = %d", i, c.Index)
		}
		if c.Transition != ref.transition {
			t.Errorf("cell %d: Transition = %v, want %v", i, c.Transition, ref.transition)
		}
		for a := range ref.angle {
			if math.Abs(c.RotationAngle[a]-ref.angle[a]) > 1e-9 {
				t.Errorf("cell %d: RotationAngle[%v] = %v, want %v", i, Axis(a), c.RotationAngle[a], ref.angle[a])
			}
		}
		if c.Class != ref.class {
			t.Errorf("cell %d: Class = %v, want %v", i, c.Class, ref.class)
		}
		var got strings.Builder
		for _, f := range c.Faces {
			got.WriteString(f.String())
		}
		if sortedLetters(got.String()) != sortedLetters(ref.faces) {
			t.Errorf("cell %d: Faces = %s, want %s", i, got.String(), ref.faces)
		}
	}
}

func TestCellNumbering(t *testing.T) {
	tests := []struct {
		cell  int
		frame [3]int
	}{
		{0, [3]int{0, 2, 0}},
		{4, [3]int{1, 1, 0}},
		{8, [3]int{2, 0, 0}},
		{9, [3]int{0, 2, 1}},
		{12, [3]int{0, 1, 1}},
		{13, [3]int{2, 1, 1}},
		{17, [3]int{0, 2, 2}},
		{25, [3]int{2, 0, 2}},
	}
	for _, tt := range tests {
		if got := Cells[tt.cell].Frame; got != tt.frame {
			t.Errorf("cell %d: Frame = %v, want %v", tt.cell, got, tt.frame)
		}
		if got, ok := IndexOf(tt.frame); !ok || got != tt.cell {
			t.Errorf("IndexOf(%v) = %d, %v; want %d", tt.frame, got, ok, tt.cell)
		}
	}
	if _, ok := IndexOf([3]int{1, 1, 1}); ok {
		t.Error("the hidden centre slot should not be a cell")
	}
}

func TestTransitionsPermuteEachFrame(t *testing.T) {
	for _, a := range Axes {
		for layer := 0; layer <= 2; layer++ {
			f := Frame{Axis: a, Layer: layer}
			members := Members(f)
			want := 9
			if layer == 1 {
				want = 8
			}
			if len(members) != want {
				t.Errorf("%v has %d cells, want %d", f, len(members), want)
			}
			for _, d := range []Direction{Plus, Minus} {
				seen := map[int]bool{}
				for _, c := range members {
					next := Cells[c].Next(a, d)
					if !Cells[next].InFrame(f) {
						t.Errorf("%v%v: cell %d leaves the frame to %d", f, d, c, next)
					}
					if Cells[next].Class != Cells[c].Class {
						t.Errorf("%v%v: cell %d changes class", f, d, c)
					}
					seen[next] = true
					if back := Cells[next].Next(a, d.Reverse()); back != c {
						t.Errorf("%v%v then inverse: %d -> %d -> %d", f, d, c, next, back)
					}
				}
				if len(seen) != len(members) {
					t.Errorf("%v%v is not a permutation", f, d)
				}
			}
		}
	}
}

func TestFaceCycles(t *testing.T) {
	tests := []struct {
		axis Axis
		want [4]Face
	}{
		{AxisX, [4]Face{FaceFront, FaceTop, FaceNear, FaceBottom}},
		{AxisY, [4]Face{FaceFront, FaceLeft, FaceNear, FaceRight}},
		{AxisZ, [4]Face{FaceRight, FaceTop, FaceLeft, FaceBottom}},
	}
	for _, tt := range tests {
		if got := FaceCycle(tt.axis); got != tt.want {
			t.Errorf("FaceCycle(%v) = %v, want %v", tt.axis, got, tt.want)
		}
	}
}

func TestOrientationTurn(t *testing.T) {
	o := IdentityOrientation().Turn(AxisX, Plus)
	// The sticker that faced front now faces the top.
	if o[FaceTop] != FaceFront {
		t.Errorf("after X+ top shows %v, want F", o[FaceTop])
	}
	if o[FaceRight] != FaceRight || o[FaceLeft] != FaceLeft {
		t.Error("X+ should not move the right and left stickers")
	}
	if !o.Valid() {
		t.Error("turned orientation is not a permutation")
	}

	for _, a := range Axes {
		for _, d := range []Direction{Plus, Minus} {
			back := IdentityOrientation().Turn(a, d).Turn(a, d.Reverse())
			if !back.IsIdentity() {
				t.Errorf("%v%v then inverse = %v", a, d, back)
			}
			four := IdentityOrientation()
			for i := 0; i < 4; i++ {
				four = four.Turn(a, d)
			}
			if !four.IsIdentity() {
				t.Errorf("four %v%v turns = %v", a, d, four)
			}
		}
	}
}

func TestLattice(t *testing.T) {
	seen := map[Vec]bool{}
	for i, v := range Lattice {
		if seen[v] {
			t.Errorf("duplicate lattice vertex %v at %d", v, i)
		}
		seen[v] = true
		onSurface := abs(v[0]) == HalfSize || abs(v[1]) == HalfSize || abs(v[2]) == HalfSize
		if !onSurface {
			t.Errorf("vertex %d %v is not on the surface", i, v)
		}
	}

	want := [8]int{0, 3, 12, 15, 40, 43, 52, 55}
	if got := Corners(); got != want {
		t.Errorf("Corners() = %v, want %v", got, want)
	}
}

func TestFaceTablesMatchReference(t *testing.T) {
	tests := []struct {
		face  Face
		grid  [16]int
		cells [9]int
		quad  [4]int
	}{
		{FaceFront, [16]int{43, 42, 41, 40, 47, 46, 45, 44, 51, 50, 49, 48, 55, 54, 53, 52}, [9]int{19, 18, 17, 22, 21, 20, 25, 24, 23}, [4]int{55, 43, 40, 52}},
		{FaceNear, [16]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, [9]int{0, 1, 2, 3, 4, 5, 6, 7, 8}, [4]int{12, 0, 3, 15}},
		{FaceRight, [16]int{3, 19, 31, 43, 7, 21, 33, 47, 11, 23, 35, 51, 15, 27, 39, 55}, [9]int{2, 11, 19, 5, 13, 22, 8, 16, 25}, [4]int{15, 3, 43, 55}},
		{FaceLeft, [16]int{40, 28, 16, 0, 44, 32, 20, 4, 48, 34, 22, 8, 52, 36, 24, 12}, [9]int{17, 9, 0, 20, 12, 3, 23, 14, 6}, [4]int{52, 40, 0, 12}},
		{FaceTop, [16]int{40, 41, 42, 43, 28, 29, 30, 31, 16, 17, 18, 19, 0, 1, 2, 3}, [9]int{17, 18, 19, 9, 10, 11, 0, 1, 2}, [4]int{0, 40, 43, 3}},
		{FaceBottom, [16]int{12, 13, 14, 15, 24, 25, 26, 27, 36, 37, 38, 39, 52, 53, 54, 55}, [9]int{6, 7, 8, 14, 15, 16, 23, 24, 25}, [4]int{52, 12, 15, 55}},
	}
	for _, tt := range tests {
		ft := FaceTables[tt.face]
		var grid [16]int
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				grid[r*4+c] = ft.Grid[r][c]
			}
		}
		if grid != tt.grid {
			t.Errorf("%v grid = %v, want %v", tt.face, grid, tt.grid)
		}
		if ft.Cells != tt.cells {
			t.Errorf("%v cells = %v, want %v", tt.face, ft.Cells, tt.cells)
		}
		if ft.Quad != tt.quad {
			t.Errorf("%v quad = %v, want %v", tt.face, ft.Quad, tt.quad)
		}
		for i, c := range ft.Cells {
			if !Cells[c].Exposes(tt.face) {
				t.Errorf("%v cell %d (%d) does not expose the face", tt.face, i, c)
			}
			j := i + i/3
			want := [4]int{tt.grid[j], tt.grid[j+1], tt.grid[j+5], tt.grid[j+4]}
			if ft.CellQuads[i] != want {
				t.Errorf("%v cell quad %d = %v, want %v", tt.face, i, ft.CellQuads[i], want)
			}
		}
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input string
		want  Move
		err   bool
	}{
		{"X0+", NewMove(AxisX, 0, Plus), false},
		{"y2-", NewMove(AxisY, 2, Minus), false},
		{" Z1+ ", NewMove(AxisZ, 1, Plus), false},
		{"X3+", Move{}, true},
		{"W0+", Move{}, true},
		{"X0", Move{}, true},
		{"X0*", Move{}, true},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("ParseMove(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMove(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	moves, err := ParseMoves("X0+ Z2- Y0+")
	if err != nil {
		t.Fatalf("ParseMoves error: %v", err)
	}
	if FormatMoves(moves) != "X0+ Z2- Y0+" {
		t.Errorf("FormatMoves = %q", FormatMoves(moves))
	}
	if moves[1].Inverse().String() != "Z2+" {
		t.Errorf("inverse of Z2- = %v", moves[1].Inverse())
	}
}

func TestFrameTurnable(t *testing.T) {
	for _, a := range Axes {
		if !(Frame{Axis: a, Layer: 0}).Turnable() || !(Frame{Axis: a, Layer: 2}).Turnable() {
			t.Errorf("outer %v layers should be turnable", a)
		}
		if (Frame{Axis: a, Layer: 1}).Turnable() {
			t.Errorf("middle %v layer should be inert", a)
		}
	}
}

func TestSolvedNet(t *testing.T) {
	n := SolvedNet()
	if !n.IsSolved() {
		t.Error("solved net should be solved")
		t.Log(n.String())
	}

	lines := strings.Split(strings.TrimRight(n.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("net has %d lines, want 9", len(lines))
	}
	if lines[0] != "      T T T " {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[4] != "L L L N N N R R R F F F " {
		t.Errorf("middle line = %q", lines[4])
	}
}
