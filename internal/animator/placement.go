package animator

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/engine"
)

// Transformer is anything with a world transform.
type Transformer interface {
	WorldTransform() mgl64.Mat4
}

// Placement is where a piece is drawn this tick.
type Placement struct {
	Piece       int
	Cell        int
	Position    mgl64.Vec3
	Rotation    mgl64.Quat
	Orientation cube.Orientation
}

// WorldTransform maps piece-local coordinates, centred on the piece, to
// world coordinates.
func (p Placement) WorldTransform() mgl64.Mat4 {
	return mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).Mul4(p.Rotation.Mat4())
}

// Apply transforms a piece-local point.
func (p Placement) Apply(local mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(local))
}

// PlacementOf derives the placement of a piece from its cell and swing.
func PlacementOf(index int, p engine.Piece, turning cube.Axis) Placement {
	pl := Placement{
		Piece:       index,
		Cell:        p.Cell,
		Position:    cube.Cells[p.Cell].Center().Vec3(),
		Rotation:    mgl64.QuatIdent(),
		Orientation: p.Orientation,
	}
	if p.Swing.Active {
		pl.Position = p.Swing.Position
		pl.Rotation = mgl64.QuatRotate(mgl64.DegToRad(p.Swing.Angle), cube.AxisUnit(turning).Vec3())
	}
	return pl
}

// Placements returns the placement of every piece.
func (a *Animator) Placements() []Placement {
	m, _ := a.engine.CurrentMove()
	pieces := a.engine.Pieces()
	out := make([]Placement, len(pieces))
	for i, p := range pieces {
		out[i] = PlacementOf(i, p, m.Frame.Axis)
	}
	return out
}

// Placement returns the placement of one piece.
func (a *Animator) Placement(i int) Placement {
	m, _ := a.engine.CurrentMove()
	return PlacementOf(i, a.engine.Piece(i), m.Frame.Axis)
}
