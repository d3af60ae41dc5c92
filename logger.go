package glitchcube

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger configures the logger for glitchcube and the gg renderer used
// for snapshots. Pass nil to restore silence. A Game captures the logger
// when it is created, so call SetLogger before New; games that already
// exist keep logging where they did.
//
// Levels:
//   - [slog.LevelDebug]: moves, gestures, scrambles
//   - [slog.LevelInfo]: game lifecycle (reset, solved)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
