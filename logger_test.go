package glitchcube

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard every level")
	}
}

func TestSetLoggerReachesNewGames(t *testing.T) {
	var before, after bytes.Buffer
	t.Cleanup(func() { SetLogger(nil) })

	SetLogger(slog.New(slog.NewTextHandler(&before, nil)))
	old := New(WithoutScramble())

	SetLogger(slog.New(slog.NewTextHandler(&after, nil)))
	fresh := New(WithoutScramble())

	old.Reset()
	fresh.Reset()
	if !strings.Contains(before.String(), "game reset") {
		t.Errorf("existing game should keep its logger, got %q", before.String())
	}
	if n := strings.Count(after.String(), "game reset"); n != 1 {
		t.Errorf("new logger saw %d resets, want 1:\n%s", n, after.String())
	}
}
