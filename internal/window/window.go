// Package window hosts a game in a desktop window, forwarding mouse, wheel
// and keyboard input and drawing the scene every frame.
package window

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/render"
)

// WinDelay is how long the win banner shows before a new game starts.
const WinDelay = 2 * time.Second

var background = color.RGBA{A: 0xff}

var arrowKeys = map[ebiten.Key]glitchcube.Key{
	ebiten.KeyArrowLeft:  glitchcube.KeyLeft,
	ebiten.KeyArrowRight: glitchcube.KeyRight,
	ebiten.KeyArrowUp:    glitchcube.KeyUp,
	ebiten.KeyArrowDown:  glitchcube.KeyDown,
}

// Host adapts a Game to ebiten's Update/Draw/Layout loop.
type Host struct {
	game   *glitchcube.Game
	title  string
	logger *slog.Logger

	white    *ebiten.Image
	last     time.Time
	cursorX  int
	cursorY  int
	wonAt    time.Time
	wonMoves int
}

// New returns a host for g.
func New(g *glitchcube.Game, title string, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &Host{game: g, title: title, logger: logger}
	g.OnSolved(func(moves int) {
		h.wonAt = time.Now()
		h.wonMoves = moves
	})
	return h
}

// Run opens the window and blocks until it closes.
func (h *Host) Run() error {
	w, ht := h.game.Viewport()
	ebiten.SetWindowTitle(h.title)
	ebiten.SetWindowSize(int(w), int(ht))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(h)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (h *Host) Update() error {
	now := time.Now()
	elapsed := now.Sub(h.last)
	if h.last.IsZero() {
		elapsed = time.Second / 60
	}
	h.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if !h.wonAt.IsZero() {
		if now.Sub(h.wonAt) >= WinDelay {
			h.wonAt = time.Time{}
			h.game.Reset()
		}
		return nil
	}

	h.pointer()
	h.keys()
	h.game.Tick(elapsed)
	return nil
}

func (h *Host) pointer() {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	moved := x != h.cursorX || y != h.cursorY
	h.cursorX, h.cursorY = x, y

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		h.game.PointerOut()
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		h.game.PointerDown(fx, fy)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		h.game.PointerUp(fx, fy)
	case moved && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		h.game.PointerMove(fx, fy)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		h.game.Wheel(-wy)
	}
}

func (h *Host) keys() {
	for k, gk := range arrowKeys {
		if inpututil.IsKeyJustPressed(k) {
			h.game.KeyDown(gk)
		}
		if inpututil.IsKeyJustReleased(k) {
			h.game.KeyUp(gk)
		}
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		switch r {
		case 'n':
			h.game.Reset()
		case 'p':
			h.game.SetPaused(!h.game.Paused())
		default:
			if h.game.TurnKey(r) {
				h.logger.Debug("key turn", "key", string(r))
			}
		}
	}
}

func (h *Host) Draw(screen *ebiten.Image) {
	if h.white == nil {
		h.white = ebiten.NewImage(3, 3)
		h.white.Fill(color.White)
	}
	screen.Fill(background)

	src := h.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	op := &ebiten.DrawTrianglesOptions{}
	for _, p := range h.game.Scene() {
		vs, is := triangles(p)
		screen.DrawTriangles(vs, is, src, op)
	}

	ebitenutil.DebugPrint(screen, h.hud())
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.game.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func (h *Host) hud() string {
	switch {
	case !h.wonAt.IsZero():
		return fmt.Sprintf("You won in %d moves!", h.wonMoves)
	case h.game.Paused():
		return fmt.Sprintf("Moves: %d  [paused, p to resume]", h.game.MoveCount())
	default:
		return fmt.Sprintf("Moves: %d  n new game  p pause  esc quit", h.game.MoveCount())
	}
}

// triangles fans a convex polygon into two triangles.
func triangles(p render.Polygon) ([]ebiten.Vertex, []uint16) {
	r := float32(p.Color.R) / 0xff
	g := float32(p.Color.G) / 0xff
	b := float32(p.Color.B) / 0xff
	a := float32(p.Color.A) / 0xff

	vs := make([]ebiten.Vertex, len(p.Points))
	for i, pt := range p.Points {
		vs[i] = ebiten.Vertex{
			DstX:   float32(pt.X()),
			DstY:   float32(pt.Y()),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	return vs, []uint16{0, 1, 2, 0, 2, 3}
}
