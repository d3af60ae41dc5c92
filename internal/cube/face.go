package cube

import "github.com/go-gl/mathgl/mgl64"

// Face labels one of the six outward directions of the cube. A face label
// doubles as a sticker label: a sticker is named after the face it shows on
// a solved cube.
type Face int

const (
	FaceFront  Face = iota // F, far side, -z
	FaceNear               // N, +z
	FaceRight              // R, +x
	FaceLeft               // L, -x
	FaceTop                // T, +y
	FaceBottom             // B, -y
)

// FaceCount is the number of face labels.
const FaceCount = 6

// AllFaces lists the faces in label order.
var AllFaces = [FaceCount]Face{FaceFront, FaceNear, FaceRight, FaceLeft, FaceTop, FaceBottom}

var faceNormals = [FaceCount]Vec{
	FaceFront:  {0, 0, -1},
	FaceNear:   {0, 0, 1},
	FaceRight:  {1, 0, 0},
	FaceLeft:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
}

func (f Face) String() string {
	switch f {
	case FaceFront:
		return "F"
	case FaceNear:
		return "N"
	case FaceRight:
		return "R"
	case FaceLeft:
		return "L"
	case FaceTop:
		return "T"
	case FaceBottom:
		return "B"
	default:
		return "?"
	}
}

// Name returns the long name of the face.
func (f Face) Name() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceNear:
		return "near"
	case FaceRight:
		return "right"
	case FaceLeft:
		return "left"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() Vec {
	return faceNormals[f]
}

// NormalVec returns the outward normal as a float vector.
func (f Face) NormalVec() mgl64.Vec3 {
	return faceNormals[f].Vec3()
}

// Axis returns the axis the face normal lies on.
func (f Face) Axis() Axis {
	n := faceNormals[f]
	for _, a := range Axes {
		if n[a] != 0 {
			return a
		}
	}
	return AxisX
}

// FaceOf returns the face whose normal equals the unit vector n.
func FaceOf(n Vec) (Face, bool) {
	for _, f := range AllFaces {
		if faceNormals[f] == n {
			return f, true
		}
	}
	return 0, false
}

// Vec is an integer vector in world units. Cube geometry is exact on a
// 10-unit grid, so topology is derived with integers.
type Vec [3]int

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Mul returns v scaled by k.
func (v Vec) Mul(k int) Vec {
	return Vec{v[0] * k, v[1] * k, v[2] * k}
}

// Dot returns the dot product.
func (v Vec) Dot(o Vec) int {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product v x o.
func (v Vec) Cross(o Vec) Vec {
	return Vec{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Vec3 converts to a float vector.
func (v Vec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Rotate turns v a quarter turn about the positive world axis. Plus is a
// right-handed rotation.
func (v Vec) Rotate(axis Axis, dir Direction) Vec {
	x, y, z := v[0], v[1], v[2]
	switch {
	case axis == AxisX && dir == Plus:
		return Vec{x, -z, y}
	case axis == AxisX:
		return Vec{x, z, -y}
	case axis == AxisY && dir == Plus:
		return Vec{z, y, -x}
	case axis == AxisY:
		return Vec{-z, y, x}
	case axis == AxisZ && dir == Plus:
		return Vec{-y, x, z}
	default:
		return Vec{y, -x, z}
	}
}

// AxisUnit returns the positive unit vector of an axis.
func AxisUnit(a Axis) Vec {
	var v Vec
	v[a] = 1
	return v
}

// LayerUnit returns the world direction in which the layer index of an
// axis grows. Z layers are numbered from the near side, so their index
// grows toward -z.
func LayerUnit(a Axis) Vec {
	if a == AxisZ {
		return Vec{0, 0, -1}
	}
	return AxisUnit(a)
}

// Orientation maps each canonical direction to the sticker that currently
// faces it.
type Orientation [FaceCount]Face

// IdentityOrientation is the orientation of every piece on a solved cube.
func IdentityOrientation() Orientation {
	return Orientation(AllFaces)
}

// IsIdentity reports whether every direction shows its own sticker.
func (o Orientation) IsIdentity() bool {
	return o == IdentityOrientation()
}

// Turn returns the orientation after a quarter turn: the sticker that faced
// direction d now faces d rotated.
func (o Orientation) Turn(axis Axis, dir Direction) Orientation {
	var next Orientation
	for _, f := range AllFaces {
		to := faceTurns[axis][dirIndex(dir)][f]
		next[to] = o[f]
	}
	return next
}

// Valid reports whether o is a permutation of the face labels.
func (o Orientation) Valid() bool {
	var seen [FaceCount]bool
	for _, f := range o {
		if f < 0 || int(f) >= FaceCount || seen[f] {
			return false
		}
		seen[f] = true
	}
	return true
}

// faceTurns[axis][dir][f] is the face f lands on after the turn.
var faceTurns = buildFaceTurns()

func buildFaceTurns() [3][2][FaceCount]Face {
	var t [3][2][FaceCount]Face
	for _, a := range Axes {
		for _, d := range []Direction{Plus, Minus} {
			for _, f := range AllFaces {
				to, _ := FaceOf(f.Normal().Rotate(a, d))
				t[a][dirIndex(d)][f] = to
			}
		}
	}
	return t
}

// FaceCycle returns the four faces a plus turn about axis carries into one
// another, starting from the first face in label order that moves.
func FaceCycle(axis Axis) [4]Face {
	var cycle [4]Face
	start := FaceFront
	for _, f := range AllFaces {
		if f.Axis() != axis {
			start = f
			break
		}
	}
	cur := start
	for i := range cycle {
		cycle[i] = cur
		cur = faceTurns[axis][dirIndex(Plus)][cur]
	}
	return cycle
}

func dirIndex(d Direction) int {
	if d == Minus {
		return 1
	}
	return 0
}
