package cube

// LatticeCount is the number of vertices on the outer surface grid.
const LatticeCount = 56

// Lattice holds the surface vertices of the cube on a 20-unit grid. They are
// numbered slab by slab from z=+30 to z=-30, rows from the top, columns from
// the left; the two middle slabs keep only their perimeter.
var Lattice = buildLattice()

// FaceTable is the per-face view of the lattice shared by picking and
// rendering.
type FaceTable struct {
	Face Face
	// Right and Down span the face as seen from outside the cube.
	Right, Down Vec
	// Grid[r][c] is the lattice vertex at row r, column c.
	Grid [4][4]int
	// Quad is the face outline: bottom-left, top-left, top-right, bottom-right.
	Quad [4]int
	// CellQuads and Cells follow the row-major scan order of the face.
	CellQuads [9][4]int
	Cells     [9]int
}

// FaceTables is indexed by Face.
var FaceTables = buildFaceTables()

var faceBases = [FaceCount][2]Vec{
	FaceFront:  {{-1, 0, 0}, {0, -1, 0}},
	FaceNear:   {{1, 0, 0}, {0, -1, 0}},
	FaceRight:  {{0, 0, -1}, {0, -1, 0}},
	FaceLeft:   {{0, 0, 1}, {0, -1, 0}},
	FaceTop:    {{1, 0, 0}, {0, 0, 1}},
	FaceBottom: {{1, 0, 0}, {0, 0, -1}},
}

// LatticeIndex returns the index of the surface vertex at p.
func LatticeIndex(p Vec) (int, bool) {
	for i, v := range Lattice {
		if v == p {
			return i, true
		}
	}
	return 0, false
}

// Corners returns the eight outer corner vertices.
func Corners() [8]int {
	var out [8]int
	n := 0
	for i, v := range Lattice {
		if abs(v[0]) == HalfSize && abs(v[1]) == HalfSize && abs(v[2]) == HalfSize {
			out[n] = i
			n++
		}
	}
	return out
}

// FaceCenter returns the world centre of a face of the whole cube.
func FaceCenter(f Face) Vec {
	return f.Normal().Mul(HalfSize)
}

func buildLattice() [LatticeCount]Vec {
	var out [LatticeCount]Vec
	n := 0
	for kz := 0; kz < 4; kz++ {
		z := HalfSize - CellStep*kz
		for ky := 0; ky < 4; ky++ {
			y := HalfSize - CellStep*ky
			for kx := 0; kx < 4; kx++ {
				x := -HalfSize + CellStep*kx
				inner := (ky == 1 || ky == 2) && (kx == 1 || kx == 2)
				if (kz == 1 || kz == 2) && inner {
					continue
				}
				out[n] = Vec{x, y, z}
				n++
			}
		}
	}
	return out
}

func buildFaceTables() [FaceCount]FaceTable {
	var tables [FaceCount]FaceTable
	for _, f := range AllFaces {
		n := f.Normal()
		right, down := faceBases[f][0], faceBases[f][1]
		t := FaceTable{Face: f, Right: right, Down: down}

		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				p := n.Mul(HalfSize).
					Add(right.Mul(-HalfSize + CellStep*c)).
					Add(down.Mul(-HalfSize + CellStep*r))
				idx, ok := LatticeIndex(p)
				if !ok {
					panic("cube: face grid point off lattice")
				}
				t.Grid[r][c] = idx
			}
		}
		t.Quad = [4]int{t.Grid[3][0], t.Grid[0][0], t.Grid[0][3], t.Grid[3][3]}

		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				i := r*3 + c
				t.CellQuads[i] = [4]int{t.Grid[r][c], t.Grid[r][c+1], t.Grid[r+1][c+1], t.Grid[r+1][c]}

				centre := n.Mul(HalfSize - PieceHalf).
					Add(right.Mul(-CellStep + CellStep*c)).
					Add(down.Mul(-CellStep + CellStep*r))
				cell, ok := IndexAt(centre)
				if !ok {
					panic("cube: face cell off grid")
				}
				t.Cells[i] = cell
			}
		}
		tables[f] = t
	}
	return tables
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
