// Package picker resolves a pointer position to the face and cell of the
// cube under it. Faces are tested first, most head-on first, then the nine
// cell quads of the hit face, so perspective distortion never misclassifies
// a cell.
package picker

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

// VisibilityCos is the cosine of the largest angle between a face normal
// and the direction to the camera for the face to be pickable.
var VisibilityCos = math.Cos(mgl64.DegToRad(80))

// Viewer supplies the camera transform.
type Viewer interface {
	ViewProjection() mgl64.Mat4
	Position() mgl64.Vec3
}

// Point is a position in normalized device coordinates, y up.
type Point struct {
	X, Y float64
}

// NDC converts a pixel position on a w x h surface to normalized device
// coordinates.
func NDC(x, y, w, h float64) Point {
	if w <= 0 || h <= 0 {
		return Point{}
	}
	return Point{X: x/w*2 - 1, Y: -(y/h)*2 + 1}
}

// Result is the outcome of a pick.
type Result struct {
	Hit  bool
	Face cube.Face
	Cell int
	// Raw is the pointer position in pixels as given.
	Raw mgl64.Vec2
}

// Picker projects lattice vertices through a viewer.
type Picker struct {
	viewer Viewer
}

// New returns a picker bound to a viewer.
func New(v Viewer) *Picker {
	return &Picker{viewer: v}
}

// projection caches projected lattice vertices for one pick.
type projection struct {
	m    mgl64.Mat4
	done [cube.LatticeCount]bool
	pts  [cube.LatticeCount]Point
}

func (p *projection) point(i int) Point {
	if !p.done[i] {
		v := cube.Lattice[i].Vec3()
		c := p.m.Mul4x1(v.Vec4(1))
		p.pts[i] = Point{X: c.X() / c.W(), Y: c.Y() / c.W()}
		p.done[i] = true
	}
	return p.pts[i]
}

func (p *projection) quad(idx [4]int) [4]Point {
	return [4]Point{p.point(idx[0]), p.point(idx[1]), p.point(idx[2]), p.point(idx[3])}
}

// CandidateFaces returns the faces turned toward the camera, most head-on
// first.
func CandidateFaces(camera mgl64.Vec3) []cube.Face {
	type scored struct {
		face cube.Face
		dot  float64
	}
	var faces []scored
	for _, f := range cube.AllFaces {
		centre := cube.FaceCenter(f).Vec3()
		toCamera := camera.Sub(centre)
		if toCamera.Len() == 0 {
			continue
		}
		dot := toCamera.Normalize().Dot(f.NormalVec().Normalize())
		if dot > VisibilityCos {
			faces = append(faces, scored{f, dot})
		}
	}
	sort.SliceStable(faces, func(i, j int) bool { return faces[i].dot > faces[j].dot })

	out := make([]cube.Face, len(faces))
	for i, s := range faces {
		out[i] = s.face
	}
	return out
}

// Pick resolves pointer pixel coordinates on a w x h surface.
func (p *Picker) Pick(x, y, w, h float64) Result {
	r := p.PickNDC(NDC(x, y, w, h))
	r.Raw = mgl64.Vec2{x, y}
	return r
}

// PickNDC resolves a point already in normalized device coordinates.
func (p *Picker) PickNDC(pt Point) Result {
	proj := &projection{m: p.viewer.ViewProjection()}

	for _, f := range CandidateFaces(p.viewer.Position()) {
		table := cube.FaceTables[f]
		if !InQuad(pt, proj.quad(table.Quad)) {
			continue
		}
		for i, q := range table.CellQuads {
			if InQuad(pt, proj.quad(q)) {
				return Result{Hit: true, Face: f, Cell: table.Cells[i]}
			}
		}
		// Inside the face outline but on a cell boundary.
		return Result{}
	}
	return Result{}
}
