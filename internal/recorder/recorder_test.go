package recorder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/storage"
)

func openDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStateFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "state.json")
	sf, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if err := sf.SetCameraPreset("iso"); err != nil {
		t.Fatal(err)
	}
	if err := sf.SetMuted(true); err != nil {
		t.Fatal(err)
	}
	if err := sf.SetDragThreshold(42); err != nil {
		t.Fatal(err)
	}

	again, err := NewStateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	st := again.State()
	if st.CameraPreset != "iso" || !st.Muted || st.DragThreshold != 42 {
		t.Errorf("reloaded state = %+v", st)
	}
}

func TestStateFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStateFile(path); err == nil {
		t.Error("corrupt state file should fail to load")
	}
}

func TestEventLogRoundTrip(t *testing.T) {
	l, err := OpenEventLog(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []string{"X0+", "Y2-"} {
		if err := l.Log(LogEvent{EventType: LogEventMove, Move: m}); err != nil {
			t.Fatal(err)
		}
	}
	if err := l.Log(LogEvent{EventType: LogEventSolved, Solved: true}); err != nil {
		t.Fatal(err)
	}
	path := l.FilePath()
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if err := l.Log(LogEvent{EventType: LogEventMove}); err != nil {
		t.Errorf("Log after Close = %v, want nil", err)
	}

	got, err := LoadEventLog(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != logVersion || got.CreatedAt.IsZero() {
		t.Errorf("header = %q %v", got.Version, got.CreatedAt)
	}
	if len(got.Events) != 3 {
		t.Fatalf("got %d events, want 3", len(got.Events))
	}
	if mv := got.Moves(); len(mv) != 2 || mv[0] != "X0+" || mv[1] != "Y2-" {
		t.Errorf("Moves = %v", mv)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := openDB(t)
	s := NewSession(db, nil, nil, nil)

	if err := s.RecordMove(cube.NewMove(cube.AxisX, 0, cube.Plus)); !errors.Is(err, ErrNoGame) {
		t.Errorf("RecordMove before Start = %v", err)
	}

	scramble, _ := cube.ParseMoves("Y2+")
	id, err := s.Start(time.Now(), scramble, "iso")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Start(time.Now(), nil, ""); !errors.Is(err, ErrGameInProgress) {
		t.Errorf("second Start = %v", err)
	}
	if err := s.RecordMove(cube.NewMove(cube.AxisY, 2, cube.Minus)); err != nil {
		t.Fatal(err)
	}
	if err := s.End(true); err != nil {
		t.Fatal(err)
	}

	g, err := storage.NewGameRepository(db).Get(id)
	if err != nil || g == nil {
		t.Fatalf("Get = %v, %v", g, err)
	}
	if !g.Solved || g.MoveCount != 1 || *g.ScrambleText != "Y2+" || *g.CameraPreset != "iso" {
		t.Errorf("stored game = %+v", g)
	}
	if s.State() != StateEnded {
		t.Errorf("state = %v", s.State())
	}
}

func TestAttachRecordsGames(t *testing.T) {
	db := openDB(t)
	sf, err := NewStateFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	logDir := t.TempDir()
	el, err := OpenEventLog(logDir)
	if err != nil {
		t.Fatal(err)
	}
	defer el.Close()

	s := NewSession(db, sf, el, nil)
	g := glitchcube.New(glitchcube.WithoutScramble())
	if err := s.Attach(g); err != nil {
		t.Fatal(err)
	}
	first := s.GameID()

	// Abandon the first game after one move.
	if err := g.Apply(cube.NewMove(cube.AxisX, 0, cube.Plus)); err != nil {
		t.Fatal(err)
	}
	g.Reset()
	second := s.GameID()
	if second == first {
		t.Fatal("reset should start a new game")
	}
	if sf.LastGameID() != second {
		t.Errorf("state file last game = %q, want %q", sf.LastGameID(), second)
	}

	// Solve the second one.
	if err := g.Apply(cube.NewMove(cube.AxisZ, 2, cube.Plus), cube.NewMove(cube.AxisZ, 2, cube.Minus)); err != nil {
		t.Fatal(err)
	}

	games := storage.NewGameRepository(db)
	g1, _ := games.Get(first)
	g2, _ := games.Get(second)
	if g1 == nil || !g1.Finished() || g1.Solved || g1.MoveCount != 1 {
		t.Errorf("first game = %+v", g1)
	}
	if g2 == nil || !g2.Finished() || !g2.Solved || g2.MoveCount != 2 {
		t.Errorf("second game = %+v", g2)
	}

	recs, err := storage.NewMoveRepository(db).GetByGame(second)
	if err != nil {
		t.Fatal(err)
	}
	moves, err := storage.ToMoves(recs)
	if err != nil {
		t.Fatal(err)
	}
	if cube.FormatMoves(moves) != "Z2+ Z2-" {
		t.Errorf("stored moves = %v", moves)
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close after solve = %v", err)
	}

	log, err := LoadEventLog(el.FilePath())
	if err != nil {
		t.Fatal(err)
	}
	if n := len(log.Moves()); n != 3 {
		t.Errorf("event log has %d moves, want 3", n)
	}
}
