package glitchcube

import (
	"log/slog"
	"time"

	"github.com/SeamusWaldron/glitchcube/internal/animator"
	"github.com/SeamusWaldron/glitchcube/internal/camera"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/engine"
	"github.com/SeamusWaldron/glitchcube/internal/gesture"
	"github.com/SeamusWaldron/glitchcube/internal/picker"
	"github.com/SeamusWaldron/glitchcube/internal/render"
)

// Key is a camera orbit key.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
)

var cameraKeys = map[Key]camera.Key{
	KeyLeft:  camera.KeyLeft,
	KeyRight: camera.KeyRight,
	KeyUp:    camera.KeyUp,
	KeyDown:  camera.KeyDown,
}

// KeyBindings maps keyboard runes to quarter turns.
var KeyBindings = map[rune]cube.Move{
	'z': cube.NewMove(cube.AxisX, 0, cube.Plus),
	'x': cube.NewMove(cube.AxisX, 0, cube.Minus),
	'c': cube.NewMove(cube.AxisX, 2, cube.Plus),
	'v': cube.NewMove(cube.AxisX, 2, cube.Minus),
	'a': cube.NewMove(cube.AxisY, 0, cube.Plus),
	's': cube.NewMove(cube.AxisY, 0, cube.Minus),
	'd': cube.NewMove(cube.AxisY, 2, cube.Plus),
	'f': cube.NewMove(cube.AxisY, 2, cube.Minus),
	'q': cube.NewMove(cube.AxisZ, 0, cube.Plus),
	'w': cube.NewMove(cube.AxisZ, 0, cube.Minus),
	'e': cube.NewMove(cube.AxisZ, 2, cube.Plus),
	'r': cube.NewMove(cube.AxisZ, 2, cube.Minus),
}

// Game ties the engine, animator, camera, picker and gesture resolver
// together behind a single tick and input surface. It is not safe for
// concurrent use; hosts call it from one loop.
type Game struct {
	cfg *config

	engine   *engine.Engine
	animator *animator.Animator
	camera   *camera.Camera
	picker   *picker.Picker
	gesture  *gesture.Resolver
	logger   *slog.Logger

	width, height float64
	paused        bool
	scramble      []cube.Move
	startedAt     time.Time

	orbiting     bool
	lastX, lastY float64

	onMoveStart []func(cube.Move)
	onMoveEnd   []func(cube.Move, bool)
	onSolved    []func(moves int)
	onReset     []func(scramble []cube.Move)
}

// New creates a game. Unless WithoutScramble is given, the cube starts
// scrambled.
func New(opts ...Option) *Game {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = Logger()
	}

	engineOpts := []engine.Option{
		engine.WithScrambleLength(cfg.scrambleMin, cfg.scrambleMax),
		engine.WithLogger(logger),
	}
	if cfg.seeded {
		engineOpts = append(engineOpts, engine.WithSeed(cfg.seed))
	}

	g := &Game{
		cfg:    cfg,
		engine: engine.New(engineOpts...),
		camera: camera.New(cfg.width/cfg.height, cfg.pose),
		logger: logger,
		width:  cfg.width,
		height: cfg.height,
	}
	g.animator = animator.New(g.engine, cfg.turnSpeed)
	g.picker = picker.New(g.camera)
	g.gesture = gesture.New(g.picker, g.engine, g.camera,
		gesture.WithThreshold(cfg.dragThreshold),
		gesture.WithLogger(logger),
	)
	g.gesture.SetViewport(g.width, g.height)

	g.engine.OnMoveStart(g.moveStarted)
	g.engine.OnMoveEnd(g.moveEnded)
	g.engine.OnSolved(g.solved)

	g.restart()
	return g
}

// OnMoveStart adds a callback fired when a counted turn starts. Callbacks
// run in registration order on the goroutine driving the game.
func (g *Game) OnMoveStart(fn func(cube.Move)) {
	g.onMoveStart = append(g.onMoveStart, fn)
}

// OnMoveEnd adds a callback fired after every counted turn with the solved
// status.
func (g *Game) OnMoveEnd(fn func(cube.Move, bool)) {
	g.onMoveEnd = append(g.onMoveEnd, fn)
}

// OnSolved adds a callback fired when a turn solves the cube. The game is
// paused when it fires; call Reset to play again.
func (g *Game) OnSolved(fn func(moves int)) {
	g.onSolved = append(g.onSolved, fn)
}

// OnReset adds a callback fired after Reset with the new scramble.
func (g *Game) OnReset(fn func(scramble []cube.Move)) {
	g.onReset = append(g.onReset, fn)
}

func (g *Game) moveStarted(m cube.Move) {
	g.logger.Debug("move started", "move", m.String())
	for _, fn := range g.onMoveStart {
		fn(m)
	}
}

func (g *Game) moveEnded(m cube.Move, solved bool) {
	for _, fn := range g.onMoveEnd {
		fn(m, solved)
	}
}

func (g *Game) solved() {
	g.paused = true
	g.gesture.Cancel()
	g.orbiting = false
	g.logger.Info("cube solved", "moves", g.engine.MoveCount(), "elapsed", time.Since(g.startedAt))
	for _, fn := range g.onSolved {
		fn(g.engine.MoveCount())
	}
}

func (g *Game) restart() {
	g.gesture.Cancel()
	g.animator.Reset()
	g.orbiting = false
	if g.cfg.scramble {
		g.scramble = g.engine.Reset()
	} else {
		g.engine.Restore()
		g.scramble = nil
	}
	g.paused = false
	g.startedAt = time.Now()
}

// Reset restores the cube, scrambles it, zeroes the move counter and
// unpauses.
func (g *Game) Reset() []cube.Move {
	g.restart()
	g.logger.Info("game reset", "scramble", len(g.scramble))
	scramble := g.Scramble()
	for _, fn := range g.onReset {
		fn(scramble)
	}
	return scramble
}

// Scramble returns the scramble applied by the last reset.
func (g *Game) Scramble() []cube.Move {
	out := make([]cube.Move, len(g.scramble))
	copy(out, g.scramble)
	return out
}

// StartedAt returns when the current game began.
func (g *Game) StartedAt() time.Time {
	return g.startedAt
}

// Tick advances the camera and any turn in flight by elapsed wall time. It
// reports whether a turn was committed. A paused game ignores ticks.
func (g *Game) Tick(elapsed time.Duration) bool {
	if g.paused {
		return false
	}
	g.camera.Update()
	committed, _ := g.animator.Tick(elapsed)
	return committed
}

// SetPaused freezes or resumes ticks and input. A turn in flight stays
// where it is.
func (g *Game) SetPaused(paused bool) {
	if paused {
		g.gesture.Cancel()
		g.orbiting = false
	}
	g.paused = paused
}

// Paused reports whether the game is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetViewport resizes the pointer surface and the camera aspect.
func (g *Game) SetViewport(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	g.width, g.height = w, h
	g.camera.SetAspect(w / h)
	g.gesture.SetViewport(w, h)
}

// Viewport returns the pointer surface size.
func (g *Game) Viewport() (w, h float64) {
	return g.width, g.height
}

// SetCameraPreset moves the camera to a named pose.
func (g *Game) SetCameraPreset(name string) {
	g.camera.SetPose(camera.PoseByName(name))
	g.cfg.preset = presetName(name)
}

// CameraPreset returns the name of the last selected camera preset.
func (g *Game) CameraPreset() string {
	return g.cfg.preset
}

// PointerDown starts a turn gesture when the press lands on the cube and a
// camera orbit otherwise.
func (g *Game) PointerDown(x, y float64) {
	if g.paused {
		return
	}
	if g.gesture.Press(x, y) {
		return
	}
	g.orbiting = true
	g.lastX, g.lastY = x, y
}

// PointerMove feeds the gesture in progress or orbits the camera.
func (g *Game) PointerMove(x, y float64) {
	if g.paused {
		return
	}
	if g.gesture.Tracking() {
		g.gesture.Move(x, y)
		return
	}
	if g.orbiting {
		g.camera.Drag(x-g.lastX, y-g.lastY)
		g.lastX, g.lastY = x, y
	}
}

// PointerUp ends the gesture or orbit.
func (g *Game) PointerUp(x, y float64) {
	if g.paused {
		return
	}
	if g.gesture.Tracking() {
		g.gesture.Release(x, y)
	}
	g.orbiting = false
}

// PointerOut drops any gesture when the pointer leaves the surface or a
// secondary button is pressed.
func (g *Game) PointerOut() {
	g.gesture.Cancel()
	g.orbiting = false
}

// Wheel zooms the camera; positive moves away.
func (g *Game) Wheel(dir float64) {
	if g.paused {
		return
	}
	g.camera.Zoom(dir)
}

// KeyDown starts orbiting with an arrow key.
func (g *Game) KeyDown(k Key) {
	if ck, ok := cameraKeys[k]; ok && !g.paused {
		g.camera.PressKey(ck)
	}
}

// KeyUp stops orbiting with an arrow key.
func (g *Game) KeyUp(k Key) {
	if ck, ok := cameraKeys[k]; ok {
		g.camera.ReleaseKey(ck)
	}
}

// TurnKey starts the turn bound to r. It reports whether a turn started.
func (g *Game) TurnKey(r rune) bool {
	m, ok := KeyBindings[r]
	if !ok {
		return false
	}
	return g.Turn(m) == nil
}

// Turn starts an animated quarter turn.
func (g *Game) Turn(m cube.Move) error {
	if g.paused {
		return ErrPaused
	}
	return g.engine.StartMove(m)
}

// Apply performs quarter turns instantly. They are counted like played
// turns.
func (g *Game) Apply(moves ...cube.Move) error {
	return g.engine.Apply(moves...)
}

// Pick resolves a pixel position to the face cell under it.
func (g *Game) Pick(x, y float64) picker.Result {
	return g.picker.Pick(x, y, g.width, g.height)
}

// MoveCount returns the number of counted turns since the last reset.
func (g *Game) MoveCount() int {
	return g.engine.MoveCount()
}

// History returns the counted turns since the last reset.
func (g *Game) History() []cube.Move {
	return g.engine.History()
}

// Solved reports whether every piece is home.
func (g *Game) Solved() bool {
	return g.engine.IsSolved()
}

// Animating reports whether a turn is in flight.
func (g *Game) Animating() bool {
	return g.engine.Animating()
}

// Tracking reports whether a turn gesture is in progress.
func (g *Game) Tracking() bool {
	return g.gesture.Tracking()
}

// Placements returns the world placement of every piece.
func (g *Game) Placements() []animator.Placement {
	return g.animator.Placements()
}

// Scene returns the visible polygons for the current viewport, farthest
// first.
func (g *Game) Scene() []render.Polygon {
	return render.Scene(g.camera, g.animator.Placements(), g.width, g.height)
}

// Net returns the facelet net of the current state.
func (g *Game) Net() cube.Net {
	return g.engine.Net()
}
