package animator

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/engine"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 0.06},
		{time.Millisecond, 0.06},
		{50 * time.Millisecond, 3},
		{time.Second, 60},
		{5 * time.Second, 60},
	}
	for _, tt := range tests {
		if got := Ratio(tt.elapsed); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Ratio(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestTickWithoutMoveIsNoop(t *testing.T) {
	e := engine.New()
	a := New(e, 0)
	committed, solved := a.Tick(50 * time.Millisecond)
	if committed || solved {
		t.Error("idle tick should not commit")
	}
	if a.Angle() != 0 {
		t.Errorf("Angle() = %v, want 0", a.Angle())
	}
	for i, p := range e.Pieces() {
		if p.Swing.Active {
			t.Errorf("piece %d swinging while idle", i)
		}
	}
}

func TestTickCommitsAtNinetyDegrees(t *testing.T) {
	e := engine.New()
	a := New(e, DefaultSpeed)
	m := cube.NewMove(cube.AxisX, 0, cube.Plus)
	if err := e.StartMove(m); err != nil {
		t.Fatal(err)
	}

	// 50ms is 3 equivalent ticks, 6 degrees.
	for i := 1; i < 15; i++ {
		committed, _ := a.Tick(50 * time.Millisecond)
		if committed {
			t.Fatalf("committed early at tick %d", i)
		}
		if got := a.Angle(); math.Abs(got-float64(6*i)) > 1e-9 {
			t.Fatalf("tick %d: Angle() = %v", i, got)
		}
		if e.MoveCount() != 0 {
			t.Fatalf("tick %d: move committed during sweep", i)
		}
	}
	committed, solved := a.Tick(50 * time.Millisecond)
	if !committed {
		t.Fatal("15th tick should commit")
	}
	if solved {
		t.Error("X0+ from solved should not be solved")
	}
	if e.Animating() || a.Angle() != 0 {
		t.Error("animator should be idle after commit")
	}
	if e.MoveCount() != 1 {
		t.Errorf("MoveCount() = %d, want 1", e.MoveCount())
	}
}

func TestSwingFollowsRotation(t *testing.T) {
	moves := []cube.Move{
		cube.NewMove(cube.AxisX, 0, cube.Plus),
		cube.NewMove(cube.AxisY, 2, cube.Minus),
		cube.NewMove(cube.AxisZ, 0, cube.Minus),
		cube.NewMove(cube.AxisZ, 2, cube.Plus),
	}
	for _, m := range moves {
		e := engine.New()
		a := New(e, DefaultSpeed)
		if err := e.StartMove(m); err != nil {
			t.Fatal(err)
		}
		a.Tick(100 * time.Millisecond) // 12 degrees

		signed := 12 * float64(m.Dir)
		rot := mgl64.QuatRotate(mgl64.DegToRad(signed), cube.AxisUnit(m.Frame.Axis).Vec3())
		for _, i := range e.Active() {
			p := e.Piece(i)
			want := rot.Rotate(cube.Cells[p.Cell].Center().Vec3())
			if !p.Swing.Active {
				t.Errorf("%v: piece %d not swinging", m, i)
				continue
			}
			if !p.Swing.Position.ApproxEqualThreshold(want, 1e-9) {
				t.Errorf("%v: piece %d at %v, want %v", m, i, p.Swing.Position, want)
			}
			if math.Abs(p.Swing.Angle-signed) > 1e-9 {
				t.Errorf("%v: piece %d spin %v, want %v", m, i, p.Swing.Angle, signed)
			}
		}
	}
}

func TestPlacements(t *testing.T) {
	e := engine.New()
	a := New(e, DefaultSpeed)
	m := cube.NewMove(cube.AxisY, 0, cube.Plus)
	if err := e.StartMove(m); err != nil {
		t.Fatal(err)
	}
	a.Tick(250 * time.Millisecond) // 30 degrees

	active := map[int]bool{}
	for _, i := range e.Active() {
		active[i] = true
	}
	for _, pl := range a.Placements() {
		rest := cube.Cells[pl.Cell].Center().Vec3()
		if !active[pl.Piece] {
			if !pl.Position.ApproxEqual(rest) {
				t.Errorf("idle piece %d moved to %v", pl.Piece, pl.Position)
			}
			continue
		}
		// A point on the piece's top face must rotate with the piece.
		local := mgl64.Vec3{0, cube.PieceHalf, 0}
		want := mgl64.QuatRotate(mgl64.DegToRad(30), mgl64.Vec3{0, 1, 0}).Rotate(rest.Add(local))
		if got := pl.Apply(local); !got.ApproxEqualThreshold(want, 1e-9) {
			t.Errorf("piece %d top point %v, want %v", pl.Piece, got, want)
		}
		wt := pl.WorldTransform().Mul4x1(local.Vec4(1)).Vec3()
		if !wt.ApproxEqualThreshold(want, 1e-9) {
			t.Errorf("piece %d world transform %v, want %v", pl.Piece, wt, want)
		}
	}
}

func TestRadius(t *testing.T) {
	if Radius(cube.PositionCorner) <= Radius(cube.PositionEdge) {
		t.Error("corners should swing wider than edges")
	}
	if Radius(cube.PositionFaceCenter) != 0 {
		t.Error("face centres spin in place")
	}
}

func TestResetDropsSweep(t *testing.T) {
	e := engine.New()
	a := New(e, DefaultSpeed)
	m := cube.NewMove(cube.AxisX, 0, cube.Plus)
	if err := e.StartMove(m); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 14; i++ {
		a.Tick(50 * time.Millisecond)
	}

	e.Restore()
	a.Reset()
	if a.Angle() != 0 {
		t.Fatalf("Angle() = %v after Reset", a.Angle())
	}
	if err := e.StartMove(m); err != nil {
		t.Fatal(err)
	}
	if committed, _ := a.Tick(50 * time.Millisecond); committed {
		t.Error("a fresh move should sweep from zero")
	}
	if got := a.Angle(); math.Abs(got-6) > 1e-9 {
		t.Errorf("Angle() = %v, want 6", got)
	}
}
