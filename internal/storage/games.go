package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Game is one played game.
type Game struct {
	GameID       string
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
	ScrambleText *string
	CameraPreset *string
	MoveCount    int
	Solved       bool
}

// Finished reports whether the game has an end time.
func (g *Game) Finished() bool {
	return g.EndedAt != nil
}

// Duration returns the game duration, or zero while it is running.
func (g *Game) Duration() time.Duration {
	if g.DurationMs == nil {
		return 0
	}
	return time.Duration(*g.DurationMs) * time.Millisecond
}

// GameRepository provides CRUD operations for games.
type GameRepository struct {
	db *DB
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create inserts a running game and returns its ID.
func (r *GameRepository) Create(startedAt time.Time, scramble, preset string) (string, error) {
	id := uuid.New().String()

	var scramblePtr, presetPtr *string
	if scramble != "" {
		scramblePtr = &scramble
	}
	if preset != "" {
		presetPtr = &preset
	}

	_, err := r.db.Exec(`
		INSERT INTO games (game_id, started_at, scramble_text, camera_preset)
		VALUES (?, ?, ?, ?)
	`, id, formatTime(startedAt), scramblePtr, presetPtr)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return id, nil
}

// End closes a game with its final move count and solved flag.
func (r *GameRepository) End(gameID string, endedAt time.Time, moveCount int, solved bool) error {
	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM games WHERE game_id = ?", gameID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get game start time: %w", err)
	}
	startedAt, err := parseTime(startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	solvedInt := 0
	if solved {
		solvedInt = 1
	}
	_, err = r.db.Exec(`
		UPDATE games
		SET ended_at = ?, duration_ms = ?, move_count = ?, solved = ?
		WHERE game_id = ?
	`, formatTime(endedAt), endedAt.Sub(startedAt).Milliseconds(), moveCount, solvedInt, gameID)
	if err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}
	return nil
}

const gameColumns = `game_id, started_at, ended_at, duration_ms, scramble_text, camera_preset, move_count, solved`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(s scanner) (*Game, error) {
	var g Game
	var startedAtStr string
	var endedAtStr sql.NullString
	var solved int

	err := s.Scan(&g.GameID, &startedAtStr, &endedAtStr, &g.DurationMs,
		&g.ScrambleText, &g.CameraPreset, &g.MoveCount, &solved)
	if err != nil {
		return nil, err
	}

	g.StartedAt, _ = parseTime(startedAtStr)
	if endedAtStr.Valid {
		t, _ := parseTime(endedAtStr.String)
		g.EndedAt = &t
	}
	g.Solved = solved == 1
	return &g, nil
}

// Get retrieves a game by ID. It returns nil if the game does not exist.
func (r *GameRepository) Get(gameID string) (*Game, error) {
	g, err := scanGame(r.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE game_id = ?`, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}

// GetLast retrieves the most recently started game, or nil.
func (r *GameRepository) GetLast() (*Game, error) {
	g, err := scanGame(r.db.QueryRow(`SELECT ` + gameColumns + ` FROM games ORDER BY started_at DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last game: %w", err)
	}
	return g, nil
}

// List returns up to limit games, newest first. A non-positive limit lists
// every game.
func (r *GameRepository) List(limit int) ([]Game, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(`SELECT `+gameColumns+` FROM games ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

// Stats summarises finished games.
type Stats struct {
	Played     int
	Solved     int
	BestMoves  *int
	BestTimeMs *int64
}

// Stats returns totals and personal bests over solved games.
func (r *GameRepository) Stats() (Stats, error) {
	var s Stats
	err := r.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(solved), 0)
		FROM games WHERE ended_at IS NOT NULL
	`).Scan(&s.Played, &s.Solved)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count games: %w", err)
	}

	var bestMoves sql.NullInt64
	var bestTime sql.NullInt64
	err = r.db.QueryRow(`
		SELECT MIN(move_count), MIN(duration_ms)
		FROM games WHERE solved = 1
	`).Scan(&bestMoves, &bestTime)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get personal bests: %w", err)
	}
	if bestMoves.Valid {
		n := int(bestMoves.Int64)
		s.BestMoves = &n
	}
	if bestTime.Valid {
		s.BestTimeMs = &bestTime.Int64
	}
	return s, nil
}

// Delete removes a game and its moves.
func (r *GameRepository) Delete(gameID string) error {
	if _, err := r.db.Exec("DELETE FROM games WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}
