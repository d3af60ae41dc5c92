// Package snapshot draws a scene to PNG with the gg software renderer.
package snapshot

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/SeamusWaldron/glitchcube/internal/render"
)

// Background is the clear colour of every snapshot.
var Background = gg.RGB(0.08, 0.08, 0.1)

// Outline is the colour of the edge drawn around piece bodies.
var Outline = gg.RGB(0.15, 0.15, 0.15)

// Style controls the background and whether piece bodies get an outline.
type Style struct {
	Background gg.RGBA
	Outline    bool
}

// DefaultStyle is used for PNG snapshots.
var DefaultStyle = Style{Background: Background, Outline: true}

// Draw paints polygons, farthest first, onto a new w x h context in the
// default style. The caller owns the context and must Close it.
func Draw(polys []render.Polygon, w, h int) (*gg.Context, error) {
	return DrawStyled(polys, w, h, DefaultStyle)
}

// DrawStyled is Draw with an explicit style.
func DrawStyled(polys []render.Polygon, w, h int, style Style) (*gg.Context, error) {
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(style.Background)
	dc.SetLineWidth(1)

	for _, p := range polys {
		dc.MoveTo(p.Points[0].X(), p.Points[0].Y())
		for _, pt := range p.Points[1:] {
			dc.LineTo(pt.X(), pt.Y())
		}
		dc.ClosePath()
		dc.SetColor(p.Color)

		if p.Sticker || !style.Outline {
			if err := dc.Fill(); err != nil {
				dc.Close()
				return nil, fmt.Errorf("failed to fill polygon: %w", err)
			}
			continue
		}
		if err := dc.FillPreserve(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("failed to fill piece side: %w", err)
		}
		dc.SetColor(Outline.Color())
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("failed to outline piece side: %w", err)
		}
	}
	return dc, nil
}

// Terminal redraws c from polys at the canvas size, on the canvas
// background and without outlines.
func Terminal(c *render.Canvas, polys []render.Polygon) error {
	dc, err := DrawStyled(polys, c.Width, c.Height, Style{Background: gg.FromColor(c.Background)})
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.FlushGPU(); err != nil {
		return fmt.Errorf("failed to flush renderer: %w", err)
	}
	c.Load(dc.Image())
	return nil
}

// Encode writes the scene as PNG.
func Encode(out io.Writer, polys []render.Polygon, w, h int) error {
	dc, err := Draw(polys, w, h)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.EncodePNG(out); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Save writes the scene to a PNG file.
func Save(path string, polys []render.Polygon, w, h int) error {
	dc, err := Draw(polys, w, h)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", path, err)
	}
	return nil
}
