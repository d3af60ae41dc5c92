package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Canvas is a small RGBA pixel grid. Terminal output packs two pixel rows
// into one text row using the upper half block.
type Canvas struct {
	Width, Height int
	Background    color.RGBA
	pix           []color.RGBA
}

// NewCanvas returns a canvas cleared to bg.
func NewCanvas(w, h int, bg color.RGBA) *Canvas {
	c := &Canvas{Width: w, Height: h, Background: bg, pix: make([]color.RGBA, w*h)}
	c.Clear()
	return c
}

// ForTerminal returns a canvas covering cols x rows text cells.
func ForTerminal(cols, rows int, bg color.RGBA) *Canvas {
	return NewCanvas(cols, rows*2, bg)
}

// Clear fills the canvas with the background colour.
func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = c.Background
	}
}

// At returns the pixel at x, y.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return c.Background
	}
	return c.pix[y*c.Width+x]
}

// Set writes one pixel.
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.pix[y*c.Width+x] = col
}

// Load copies img into the canvas, starting at the image origin.
func (c *Canvas) Load(img image.Image) {
	b := img.Bounds()
	for y := 0; y < c.Height && y < b.Dy(); y++ {
		for x := 0; x < c.Width && x < b.Dx(); x++ {
			c.pix[y*c.Width+x] = color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
		}
	}
}

// String renders the canvas with half blocks, merging runs of equal cells
// into one styled span.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < (c.Height+1)/2; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		runStart := 0
		for x := 1; x <= c.Width; x++ {
			if x < c.Width && c.cell(x, row) == c.cell(runStart, row) {
				continue
			}
			cell := c.cell(runStart, row)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(cell.top))).
				Background(lipgloss.Color(hex(cell.bottom)))
			b.WriteString(style.Render(strings.Repeat("▀", x-runStart)))
			runStart = x
		}
	}
	return b.String()
}

type halfBlock struct {
	top, bottom color.RGBA
}

func (c *Canvas) cell(x, row int) halfBlock {
	return halfBlock{c.At(x, row*2), c.At(x, row*2+1)}
}

func hex(col color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
}
