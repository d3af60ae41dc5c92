// Package render turns piece placements into depth-sorted screen polygons
// and rasterises them for terminals.
package render

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/glitchcube/internal/animator"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

const (
	// StickerScale is the sticker edge as a fraction of the piece edge.
	StickerScale = 0.85
	// StickerLift keeps stickers off the piece body.
	StickerLift = 0.05
)

// BodyColor is the plastic colour of every piece.
var BodyColor = rgb(0.5, 0.5, 0.5)

var faceColors = [cube.FaceCount]color.RGBA{
	cube.FaceFront:  rgb(1, 0, 0),
	cube.FaceNear:   rgb(1, 0.4, 0.1),
	cube.FaceRight:  rgb(0, 0, 1),
	cube.FaceLeft:   rgb(0, 1, 0),
	cube.FaceTop:    rgb(1, 1, 0),
	cube.FaceBottom: rgb(0.8, 0.8, 0.8),
}

// FaceColor returns the sticker colour of a face label.
func FaceColor(f cube.Face) color.RGBA {
	return faceColors[f]
}

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{R: uint8(r*255 + 0.5), G: uint8(g*255 + 0.5), B: uint8(b*255 + 0.5), A: 255}
}

// Viewer supplies the camera transform.
type Viewer interface {
	ViewProjection() mgl64.Mat4
	Position() mgl64.Vec3
}

// Polygon is a filled quad in pixel coordinates, y down.
type Polygon struct {
	Points [4]mgl64.Vec2
	// Depth is the distance from the camera to the quad centre.
	Depth float64
	Color color.RGBA
	Piece int
	// Side is the direction the quad faces when the piece is at rest.
	Side cube.Face
	// Sticker is set for sticker quads; Label is then the sticker's face.
	Sticker bool
	Label   cube.Face
}

// Scene projects the front-facing sides and stickers of every piece onto a
// w x h surface and returns them farthest first.
func Scene(v Viewer, placements []animator.Placement, w, h float64) []Polygon {
	vp := v.ViewProjection()
	eye := v.Position()

	var out []Polygon
	for _, pl := range placements {
		cell := cube.Cells[pl.Cell]
		for _, side := range cube.AllFaces {
			n := side.NormalVec()
			centre := pl.Apply(n.Mul(cube.PieceHalf))
			if eye.Sub(centre).Dot(pl.Rotation.Rotate(n)) <= 0 {
				continue
			}
			depth := eye.Sub(centre).Len()

			body, ok := project(vp, pl, side, cube.PieceHalf, 0, w, h)
			if !ok {
				continue
			}
			out = append(out, Polygon{Points: body, Depth: depth, Color: BodyColor, Piece: pl.Piece, Side: side})

			if !cell.Exposes(side) {
				continue
			}
			label := pl.Orientation[side]
			sticker, ok := project(vp, pl, side, cube.PieceHalf*StickerScale, StickerLift, w, h)
			if !ok {
				continue
			}
			out = append(out, Polygon{
				Points:  sticker,
				Depth:   depth - StickerLift,
				Color:   FaceColor(label),
				Piece:   pl.Piece,
				Side:    side,
				Sticker: true,
				Label:   label,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}

// project maps the square of half-width half on one side of a piece to
// pixels. It fails when a corner is behind the camera.
func project(vp mgl64.Mat4, pl animator.Placement, side cube.Face, half, lift, w, h float64) ([4]mgl64.Vec2, bool) {
	t := cube.FaceTables[side]
	n := side.NormalVec().Mul(cube.PieceHalf + lift)
	r := t.Right.Vec3().Mul(half)
	d := t.Down.Vec3().Mul(half)

	local := [4]mgl64.Vec3{
		n.Sub(r).Sub(d),
		n.Add(r).Sub(d),
		n.Add(r).Add(d),
		n.Sub(r).Add(d),
	}
	var pts [4]mgl64.Vec2
	for i, l := range local {
		c := vp.Mul4x1(pl.Apply(l).Vec4(1))
		if c.W() <= 0 {
			return pts, false
		}
		x, y := c.X()/c.W(), c.Y()/c.W()
		pts[i] = mgl64.Vec2{(x + 1) / 2 * w, (1 - y) / 2 * h}
	}
	return pts, true
}
