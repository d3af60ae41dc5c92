package picker

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/glitchcube/internal/camera"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

func projectNDC(v Viewer, p mgl64.Vec3) Point {
	c := v.ViewProjection().Mul4x1(p.Vec4(1))
	return Point{X: c.X() / c.W(), Y: c.Y() / c.W()}
}

// cellSurfaceCentre returns the centre of cell i's sticker area on face f.
func cellSurfaceCentre(f cube.Face, i int) mgl64.Vec3 {
	t := cube.FaceTables[f]
	r, c := i/3, i%3
	p := f.Normal().Mul(cube.HalfSize).
		Add(t.Right.Mul(-cube.CellStep + cube.CellStep*c)).
		Add(t.Down.Mul(-cube.CellStep + cube.CellStep*r))
	return p.Vec3()
}

func TestNDC(t *testing.T) {
	tests := []struct {
		x, y, w, h float64
		want       Point
	}{
		{400, 300, 800, 600, Point{0, 0}},
		{0, 0, 800, 600, Point{-1, 1}},
		{800, 600, 800, 600, Point{1, -1}},
		{200, 450, 800, 600, Point{-0.5, -0.5}},
	}
	for _, tt := range tests {
		if got := NDC(tt.x, tt.y, tt.w, tt.h); got != tt.want {
			t.Errorf("NDC(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCentreOfCanvasHitsNearCentreCell(t *testing.T) {
	cam := camera.New(800.0/600.0, camera.DefaultPose)
	p := New(cam)
	r := p.Pick(400, 300, 800, 600)
	if !r.Hit {
		t.Fatal("centre of canvas should hit the cube")
	}
	if r.Face != cube.FaceNear || r.Cell != 4 {
		t.Errorf("hit face %v cell %d, want N cell 4", r.Face, r.Cell)
	}
	if r.Raw != (mgl64.Vec2{400, 300}) {
		t.Errorf("Raw = %v", r.Raw)
	}
}

func TestEveryVisibleCellIsPickable(t *testing.T) {
	poses := map[string]camera.Pose{
		"default": camera.DefaultPose,
		"iso":     camera.IsoPose,
		"below":   {RotationX: 120, RotationY: 30, Distance: 180},
	}
	for name, pose := range poses {
		cam := camera.New(1.5, pose)
		p := New(cam)
		faces := CandidateFaces(cam.Position())
		if len(faces) == 0 {
			t.Fatalf("%s: no visible faces", name)
		}
		for _, f := range faces {
			for i, cell := range cube.FaceTables[f].Cells {
				pt := projectNDC(cam, cellSurfaceCentre(f, i))
				r := p.PickNDC(pt)
				if !r.Hit || r.Face != f || r.Cell != cell {
					t.Errorf("%s: %v cell %d picked as %+v", name, f, cell, r)
				}
			}
		}
	}
}

func TestCandidateFacesOrder(t *testing.T) {
	cam := camera.New(1, camera.IsoPose)
	faces := CandidateFaces(cam.Position())
	if len(faces) != 3 {
		t.Fatalf("iso view sees %d faces, want 3", len(faces))
	}
	seen := map[cube.Face]bool{}
	for _, f := range faces {
		seen[f] = true
	}
	for _, f := range []cube.Face{cube.FaceLeft, cube.FaceTop, cube.FaceNear} {
		if !seen[f] {
			t.Errorf("iso view should see %v", f)
		}
	}

	front := camera.New(1, camera.DefaultPose)
	if got := CandidateFaces(front.Position()); len(got) == 0 || got[0] != cube.FaceNear {
		t.Errorf("default view candidates = %v, want near first", got)
	}
}

func TestMiss(t *testing.T) {
	cam := camera.New(1, camera.DefaultPose)
	p := New(cam)
	for _, pt := range []Point{{0.95, 0.95}, {-0.95, -0.9}, {0.99, 0}} {
		if r := p.PickNDC(pt); r.Hit {
			t.Errorf("%v should miss, got %+v", pt, r)
		}
	}
}

func TestInQuad(t *testing.T) {
	square := [4]Point{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}
	trapezoid := [4]Point{{-2, -1}, {-1, 1}, {1, 1}, {2, -1}}
	tests := []struct {
		name string
		pt   Point
		q    [4]Point
		want bool
	}{
		{"centre", Point{0.1, 0.2}, square, true},
		{"outside", Point{1.5, 0}, square, false},
		{"on edge", Point{1, 0}, square, false},
		{"trapezoid slanted side inside", Point{-1.4, -0.5}, trapezoid, true},
		{"trapezoid slanted side outside", Point{-1.6, 0.5}, trapezoid, false},
	}
	for _, tt := range tests {
		if got := InQuad(tt.pt, tt.q); got != tt.want {
			t.Errorf("%s: InQuad(%v) = %v, want %v", tt.name, tt.pt, got, tt.want)
		}
	}
}
