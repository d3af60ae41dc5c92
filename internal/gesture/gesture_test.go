package gesture

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/glitchcube/internal/camera"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/engine"
	"github.com/SeamusWaldron/glitchcube/internal/picker"
)

type fakePicker map[mgl64.Vec2]picker.Result

func (f fakePicker) Pick(x, y, w, h float64) picker.Result {
	r := f[mgl64.Vec2{x, y}]
	r.Raw = mgl64.Vec2{x, y}
	return r
}

type fakeMover struct {
	moves  []cube.Move
	reject error
}

func (m *fakeMover) StartMove(mv cube.Move) error {
	if m.reject != nil {
		return m.reject
	}
	m.moves = append(m.moves, mv)
	return nil
}

type fakeCamera struct {
	enabled bool
	toggles int
}

func (c *fakeCamera) SetEnabled(e bool) {
	c.enabled = e
	c.toggles++
}

func hit(f cube.Face, cell int) picker.Result {
	return picker.Result{Hit: true, Face: f, Cell: cell}
}

func newResolver(p fakePicker) (*Resolver, *fakeMover, *fakeCamera) {
	m := &fakeMover{}
	c := &fakeCamera{enabled: true}
	r := New(p, m, c)
	r.SetViewport(800, 600)
	return r, m, c
}

// referenceInfer is the per-face constant table the sign rule replaces:
// two frame axis indices and the signs applied when the first or second
// one matches.
func referenceInfer(face cube.Face, from, to int) (cube.Move, bool) {
	table := map[cube.Face][4]int{
		cube.FaceFront:  {0, 1, 1, -1},
		cube.FaceNear:   {0, 1, -1, 1},
		cube.FaceRight:  {1, 2, 1, 1},
		cube.FaceLeft:   {1, 2, -1, -1},
		cube.FaceTop:    {0, 2, -1, -1},
		cube.FaceBottom: {0, 2, 1, 1},
	}
	c := table[face]
	i1, i2, s1, s2 := c[0], c[1], c[2], c[3]
	a, b := cube.Cells[from].Frame, cube.Cells[to].Frame

	var axis, layer, d int
	switch {
	case a[i1] == b[i1]:
		axis, layer, d = i1, a[i1], (b[i2]-a[i2])*s1
	case a[i2] == b[i2]:
		axis, layer, d = i2, a[i2], (b[i1]-a[i1])*s2
	default:
		return cube.Move{}, false
	}
	if d == 0 || layer == 1 {
		return cube.Move{}, false
	}
	dir := cube.Plus
	if d < 0 {
		dir = cube.Minus
	}
	return cube.NewMove(cube.Axis(axis), layer, dir), true
}

func TestInferMatchesReferenceTable(t *testing.T) {
	for _, f := range cube.AllFaces {
		cells := cube.FaceTables[f].Cells
		for _, from := range cells {
			for _, to := range cells {
				got, gotOK := Infer(f, from, to)
				want, wantOK := referenceInfer(f, from, to)
				if gotOK != wantOK || (gotOK && got != want) {
					t.Errorf("%v %d->%d: Infer = %v,%v; reference = %v,%v", f, from, to, got, gotOK, want, wantOK)
				}
			}
		}
	}
}

func TestInferExamples(t *testing.T) {
	tests := []struct {
		face     cube.Face
		from, to int
		want     string
		ok       bool
	}{
		{cube.FaceNear, 0, 2, "Y2+", true},   // top row dragged right
		{cube.FaceNear, 2, 0, "Y2-", true},   // top row dragged left
		{cube.FaceNear, 0, 6, "X0+", true},   // left column dragged down
		{cube.FaceNear, 0, 8, "", false},     // diagonal
		{cube.FaceNear, 3, 5, "", false},     // middle row is inert
		{cube.FaceNear, 4, 4, "", false},     // same cell
		{cube.FaceTop, 0, 17, "X0-", true},   // left column of the top face, toward the back
		{cube.FaceRight, 2, 19, "Y2+", true}, // top row of the right face, away from the viewer
	}
	for _, tt := range tests {
		got, ok := Infer(tt.face, tt.from, tt.to)
		if ok != tt.ok {
			t.Errorf("%v %d->%d: ok = %v, want %v", tt.face, tt.from, tt.to, ok, tt.ok)
			continue
		}
		if ok && got.String() != tt.want {
			t.Errorf("%v %d->%d: %v, want %s", tt.face, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDragSubmitsMoveOnRelease(t *testing.T) {
	p := fakePicker{
		{100, 100}: hit(cube.FaceNear, 0),
		{300, 100}: hit(cube.FaceNear, 2),
	}
	r, m, c := newResolver(p)

	if !r.Press(100, 100) {
		t.Fatal("press should land on the cube")
	}
	if c.enabled {
		t.Error("camera should be disabled while tracking")
	}
	mv, ok := r.Release(300, 100)
	if !ok || mv.String() != "Y2+" {
		t.Errorf("Release = %v, %v; want Y2+", mv, ok)
	}
	if len(m.moves) != 1 {
		t.Errorf("submitted %d moves, want 1", len(m.moves))
	}
	if !c.enabled || r.Tracking() {
		t.Error("gesture should end with the camera enabled")
	}
}

func TestSameCellNeverMoves(t *testing.T) {
	p := fakePicker{
		{100, 100}: hit(cube.FaceNear, 0),
		{190, 100}: hit(cube.FaceNear, 0),
	}
	r, m, _ := newResolver(p)
	r.Press(100, 100)
	if _, ok := r.Move(190, 100); ok {
		t.Error("move within one cell should not turn")
	}
	if !r.Tracking() {
		t.Error("gesture should keep tracking inside the pressed cell")
	}
	if _, ok := r.Release(190, 100); ok {
		t.Error("release on the pressed cell should not turn")
	}
	if len(m.moves) != 0 {
		t.Errorf("submitted %v", m.moves)
	}
}

func TestDifferentFacesNeverMove(t *testing.T) {
	p := fakePicker{
		{100, 100}: hit(cube.FaceNear, 2),
		{300, 100}: hit(cube.FaceRight, 11),
	}
	r, m, c := newResolver(p)
	r.Press(100, 100)
	if _, ok := r.Release(300, 100); ok {
		t.Error("drag across faces should not turn")
	}
	if len(m.moves) != 0 || !c.enabled {
		t.Error("cross-face release should end the gesture without a move")
	}
}

func TestShortDragNeverMoves(t *testing.T) {
	p := fakePicker{
		{100, 100}: hit(cube.FaceNear, 0),
		{150, 100}: hit(cube.FaceNear, 1),
	}
	r, m, _ := newResolver(p)
	r.Press(100, 100)
	if _, ok := r.Move(150, 100); ok {
		t.Error("short drag resolved on move")
	}
	if _, ok := r.Release(150, 100); ok {
		t.Error("short drag resolved on release")
	}
	if len(m.moves) != 0 {
		t.Errorf("submitted %v", m.moves)
	}
}

func TestMoveResolvesEarly(t *testing.T) {
	p := fakePicker{
		{100, 100}: hit(cube.FaceNear, 0),
		{100, 300}: hit(cube.FaceNear, 6),
	}
	r, m, _ := newResolver(p)
	r.Press(100, 100)
	mv, ok := r.Move(100, 300)
	if !ok || mv.String() != "X0+" {
		t.Errorf("Move = %v, %v; want X0+", mv, ok)
	}
	if r.Tracking() {
		t.Error("gesture should end after resolving")
	}
	if _, ok := r.Release(100, 300); ok || len(m.moves) != 1 {
		t.Error("release after an early resolve should do nothing")
	}
}

func TestFaceCentrePressWaitsForRelease(t *testing.T) {
	p := fakePicker{
		{400, 300}: hit(cube.FaceNear, 4),
		{400, 100}: hit(cube.FaceNear, 1),
		{600, 300}: hit(cube.FaceNear, 5),
	}
	r, m, _ := newResolver(p)
	r.Press(400, 300)
	if _, ok := r.Move(400, 100); ok {
		t.Error("face centre press should ignore moves")
	}
	if !r.Tracking() {
		t.Fatal("face centre press should keep tracking")
	}
	// Centre column is the middle X layer, centre row the middle Y layer.
	if _, ok := r.Release(400, 100); ok {
		t.Error("middle layer drag should not turn")
	}
	r.Press(400, 300)
	if _, ok := r.Release(600, 300); ok {
		t.Error("middle layer drag should not turn")
	}
	if len(m.moves) != 0 {
		t.Errorf("submitted %v", m.moves)
	}
}

func TestMissedPressDoesNotTrack(t *testing.T) {
	r, _, c := newResolver(fakePicker{})
	if r.Press(5, 5) {
		t.Error("press off the cube should report a miss")
	}
	if r.Tracking() || !c.enabled || c.toggles != 0 {
		t.Error("missed press should leave the camera alone")
	}
}

func TestLeavingFaceCancels(t *testing.T) {
	p := fakePicker{{100, 100}: hit(cube.FaceNear, 0)}
	r, m, c := newResolver(p)
	r.Press(100, 100)
	if _, ok := r.Move(700, 500); ok {
		t.Error("move off the cube should not turn")
	}
	if r.Tracking() || !c.enabled || len(m.moves) != 0 {
		t.Error("leaving the face should cancel the gesture")
	}
}

func TestCancel(t *testing.T) {
	p := fakePicker{{100, 100}: hit(cube.FaceNear, 0)}
	r, _, c := newResolver(p)
	r.Press(100, 100)
	r.Cancel()
	if r.Tracking() || !c.enabled {
		t.Error("Cancel should clear tracking and re-enable the camera")
	}
}

func TestRejectedMove(t *testing.T) {
	p := fakePicker{
		{100, 100}: hit(cube.FaceNear, 0),
		{300, 100}: hit(cube.FaceNear, 2),
	}
	r, m, c := newResolver(p)
	m.reject = engine.ErrMoveInFlight
	r.Press(100, 100)
	mv, ok := r.Release(300, 100)
	if ok {
		t.Error("rejected move should report not submitted")
	}
	if mv.String() != "Y2+" {
		t.Errorf("inferred %v, want Y2+", mv)
	}
	if !c.enabled || r.Tracking() {
		t.Error("rejected move should still end the gesture")
	}
	if len(m.moves) != 0 {
		t.Errorf("submitted %v", m.moves)
	}
}

func TestWithRealPickerAndEngine(t *testing.T) {
	cam := camera.New(800.0/600.0, camera.DefaultPose)
	e := engine.New()
	r := New(picker.New(cam), e, cam, WithThreshold(10))
	r.SetViewport(800, 600)

	if !r.Press(400, 300) {
		t.Fatal("centre press should hit the near face")
	}
	if cam.Enabled() {
		t.Error("camera should be disabled during the gesture")
	}
	// Straight up from the centre cell toward the top-centre cell is the
	// middle X layer, so nothing turns.
	if _, ok := r.Release(400, 200); ok {
		t.Error("middle column drag should not turn")
	}
	if !cam.Enabled() || e.Animating() {
		t.Error("gesture should end with no move in flight")
	}
}
