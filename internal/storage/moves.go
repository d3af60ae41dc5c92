package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

// MoveRecord is one stored turn.
type MoveRecord struct {
	MoveID   int64
	GameID   string
	Seq      int
	TsMs     int64
	Notation string
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Create stores move number seq of a game. tsMs is relative to the game
// start.
func (r *MoveRepository) Create(gameID string, seq int, tsMs int64, m cube.Move) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO moves (game_id, seq, ts_ms, notation)
		VALUES (?, ?, ?, ?)
	`, gameID, seq, tsMs, m.String())
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}
	return id, nil
}

// CreateBatch stores moves in one transaction, numbering them from
// startSeq. ts may be nil, which stores zero timestamps.
func (r *MoveRepository) CreateBatch(gameID string, moves []cube.Move, ts []int64, startSeq int) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, m := range moves {
			var tsMs int64
			if i < len(ts) {
				tsMs = ts[i]
			}
			_, err := tx.Exec(`
				INSERT INTO moves (game_id, seq, ts_ms, notation)
				VALUES (?, ?, ?, ?)
			`, gameID, startSeq+i, tsMs, m.String())
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startSeq+i, err)
			}
		}
		return nil
	})
}

// GetByGame retrieves a game's moves in order.
func (r *MoveRepository) GetByGame(gameID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, game_id, seq, ts_ms, notation
		FROM moves
		WHERE game_id = ?
		ORDER BY seq
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.MoveID, &m.GameID, &m.Seq, &m.TsMs, &m.Notation); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Count returns the number of stored moves for a game.
func (r *MoveRepository) Count(gameID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves parses stored notation back into turns.
func ToMoves(records []MoveRecord) ([]cube.Move, error) {
	moves := make([]cube.Move, len(records))
	for i, rec := range records {
		m, err := cube.ParseMove(rec.Notation)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", rec.Seq, err)
		}
		moves[i] = m
	}
	return moves, nil
}
