package cube

import "math"

// Geometry constants in world units.
const (
	CellCount = 26
	CellStep  = 20 // distance between neighbouring cell centres
	HalfSize  = 30 // half the edge length of the whole cube
	PieceHalf = 10 // half the edge length of one piece
)

// PositionClass buckets a cell by how many faces it exposes.
type PositionClass int

const (
	PositionCore       PositionClass = iota // hidden (1,1,1) slot, never a cell
	PositionCorner                          // three faces
	PositionEdge                            // two faces
	PositionFaceCenter                      // one face
)

func (p PositionClass) String() string {
	switch p {
	case PositionCorner:
		return "corner"
	case PositionEdge:
		return "edge"
	case PositionFaceCenter:
		return "face-center"
	default:
		return "core"
	}
}

// Cell is one fixed slot a piece can occupy.
type Cell struct {
	Index int
	// Faces are the outward directions the slot exposes, in label order.
	Faces []Face
	// Frame holds the layer index per axis.
	Frame [3]int
	// Transition[axis][0] is the destination after a plus turn,
	// Transition[axis][1] after a minus turn.
	Transition [3][2]int
	// RotationAngle is the polar angle in degrees of the centre around each
	// axis, increasing with plus turns.
	RotationAngle [3]float64
	Class         PositionClass
}

// Next returns the cell index reached by a quarter turn of a layer holding c.
func (c Cell) Next(axis Axis, dir Direction) int {
	return c.Transition[axis][dirIndex(dir)]
}

// InFrame reports whether the cell belongs to the frame.
func (c Cell) InFrame(f Frame) bool {
	return c.Frame[f.Axis] == f.Layer
}

// Exposes reports whether the cell shows the given face.
func (c Cell) Exposes(f Face) bool {
	for _, cf := range c.Faces {
		if cf == f {
			return true
		}
	}
	return false
}

// Center returns the world position of the cell centre.
func (c Cell) Center() Vec {
	return FrameCenter(c.Frame)
}

// Cells is the topology table, indexed by cell number.
var Cells = buildCells()

var cellIndex = buildCellIndex()

// FrameCenter converts layer coordinates to a world position.
func FrameCenter(frame [3]int) Vec {
	return Vec{
		(frame[0] - 1) * CellStep,
		(frame[1] - 1) * CellStep,
		(1 - frame[2]) * CellStep,
	}
}

// CenterFrame converts a world cell centre back to layer coordinates.
func CenterFrame(p Vec) [3]int {
	return [3]int{p[0]/CellStep + 1, p[1]/CellStep + 1, 1 - p[2]/CellStep}
}

// IndexOf returns the cell holding the given layer coordinates.
func IndexOf(frame [3]int) (int, bool) {
	for _, v := range frame {
		if v < 0 || v > 2 {
			return 0, false
		}
	}
	i := cellIndex[frame[0]][frame[1]][frame[2]]
	return i, i >= 0
}

// IndexAt returns the cell whose centre is at p.
func IndexAt(p Vec) (int, bool) {
	for _, v := range p {
		if v%CellStep != 0 {
			return 0, false
		}
	}
	return IndexOf(CenterFrame(p))
}

// Members returns the cells of a frame in index order.
func Members(f Frame) []int {
	var out []int
	for _, c := range Cells {
		if c.InFrame(f) {
			out = append(out, c.Index)
		}
	}
	return out
}

// framesInOrder yields layer coordinates in cell numbering order: near Z
// layer first, rows from the top, columns from the left.
func framesInOrder() [][3]int {
	var out [][3]int
	for lz := 0; lz <= 2; lz++ {
		for ly := 2; ly >= 0; ly-- {
			for lx := 0; lx <= 2; lx++ {
				if lx == 1 && ly == 1 && lz == 1 {
					continue
				}
				out = append(out, [3]int{lx, ly, lz})
			}
		}
	}
	return out
}

func buildCellIndex() [3][3][3]int {
	var idx [3][3][3]int
	for x := range idx {
		for y := range idx[x] {
			for z := range idx[x][y] {
				idx[x][y][z] = -1
			}
		}
	}
	for i, f := range framesInOrder() {
		idx[f[0]][f[1]][f[2]] = i
	}
	return idx
}

func buildCells() [CellCount]Cell {
	var cells [CellCount]Cell
	frames := framesInOrder()
	for i, f := range frames {
		cells[i] = Cell{Index: i, Frame: f}
	}

	lookup := buildCellIndex()
	for i := range cells {
		c := &cells[i]
		p := c.Center()

		for _, face := range AllFaces {
			if p.Dot(face.Normal()) > 0 {
				c.Faces = append(c.Faces, face)
			}
		}
		c.Class = PositionClass(4 - len(c.Faces))

		for _, a := range Axes {
			for _, d := range []Direction{Plus, Minus} {
				nf := CenterFrame(p.Rotate(a, d))
				c.Transition[a][dirIndex(d)] = lookup[nf[0]][nf[1]][nf[2]]
			}
		}

		c.RotationAngle = [3]float64{
			polarDegrees(float64(p[1]), float64(-p[2])),
			polarDegrees(float64(-p[2]), float64(p[0])),
			polarDegrees(float64(p[1]), float64(p[0])),
		}
	}
	return cells
}

func polarDegrees(y, x float64) float64 {
	deg := math.Atan2(y, x) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
