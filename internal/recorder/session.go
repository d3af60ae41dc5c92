package recorder

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/storage"
)

var (
	ErrGameInProgress = errors.New("recorder: game already in progress")
	ErrNoGame         = errors.New("recorder: no game in progress")
)

// SessionState is the state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session records one game at a time into the database, and optionally
// into a JSONL event log.
type Session struct {
	db        *storage.DB
	stateFile *StateFile
	eventLog  *EventLog
	logger    *slog.Logger

	mu        sync.Mutex
	state     SessionState
	gameID    string
	startTime time.Time
	moveIndex int

	gameRepo *storage.GameRepository
	moveRepo *storage.MoveRepository
}

// NewSession creates a session. stateFile and eventLog may be nil.
func NewSession(db *storage.DB, stateFile *StateFile, eventLog *EventLog, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		db:        db,
		stateFile: stateFile,
		eventLog:  eventLog,
		logger:    logger,
		state:     StateIdle,
		gameRepo:  storage.NewGameRepository(db),
		moveRepo:  storage.NewMoveRepository(db),
	}
}

// State returns the session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// GameID returns the current or last recorded game.
func (s *Session) GameID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameID
}

// MoveCount returns the moves recorded for the current game.
func (s *Session) MoveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveIndex
}

// Start begins recording a game that started at startedAt from scramble.
func (s *Session) Start(startedAt time.Time, scramble []cube.Move, preset string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrGameInProgress
	}

	scrambleText := cube.FormatMoves(scramble)
	id, err := s.gameRepo.Create(startedAt, scrambleText, preset)
	if err != nil {
		return "", fmt.Errorf("failed to start game: %w", err)
	}

	s.gameID = id
	s.startTime = startedAt
	s.moveIndex = 0
	s.state = StateRecording

	if s.stateFile != nil {
		if err := s.stateFile.SetLastGame(id); err != nil {
			s.logger.Warn("failed to update state file", "error", err)
		}
	}
	s.logEvent(LogEvent{EventType: LogEventStart, GameID: id, Scramble: scrambleText})
	return id, nil
}

// RecordMove stores the next move of the current game.
func (s *Session) RecordMove(m cube.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoGame
	}

	tsMs := time.Since(s.startTime).Milliseconds()
	if _, err := s.moveRepo.Create(s.gameID, s.moveIndex, tsMs, m); err != nil {
		return fmt.Errorf("failed to store move: %w", err)
	}
	s.moveIndex++
	s.logEvent(LogEvent{EventType: LogEventMove, GameID: s.gameID, Move: m.String(), MoveCount: s.moveIndex})
	return nil
}

// End closes the current game.
func (s *Session) End(solved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoGame
	}

	if err := s.gameRepo.End(s.gameID, time.Now(), s.moveIndex, solved); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}
	s.state = StateEnded

	if solved {
		s.logEvent(LogEvent{EventType: LogEventSolved, GameID: s.gameID, MoveCount: s.moveIndex, Solved: true})
	}
	s.logEvent(LogEvent{EventType: LogEventEnd, GameID: s.gameID, MoveCount: s.moveIndex, Solved: solved})
	return nil
}

func (s *Session) logEvent(e LogEvent) {
	if s.eventLog == nil {
		return
	}
	if err := s.eventLog.Log(e); err != nil {
		s.logger.Warn("failed to write event log", "error", err)
	}
}

// Attach records every game played on g: the current one now and each one
// after a reset. A game left unsolved by a reset is stored as abandoned.
func (s *Session) Attach(g *glitchcube.Game) error {
	if _, err := s.Start(g.StartedAt(), g.Scramble(), g.CameraPreset()); err != nil {
		return err
	}

	g.OnMoveEnd(func(m cube.Move, _ bool) {
		if err := s.RecordMove(m); err != nil {
			s.logger.Warn("failed to record move", "move", m.String(), "error", err)
		}
	})
	g.OnSolved(func(int) {
		if err := s.End(true); err != nil {
			s.logger.Warn("failed to end game", "error", err)
		}
	})
	g.OnReset(func(scramble []cube.Move) {
		if s.State() == StateRecording {
			if err := s.End(false); err != nil {
				s.logger.Warn("failed to end game", "error", err)
			}
		}
		if _, err := s.Start(g.StartedAt(), scramble, g.CameraPreset()); err != nil {
			s.logger.Warn("failed to start game", "error", err)
		}
	})
	return nil
}

// Close ends a game still in progress as unsolved.
func (s *Session) Close() error {
	if s.State() != StateRecording {
		return nil
	}
	return s.End(false)
}
