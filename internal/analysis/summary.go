package analysis

import (
	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

// Summary holds pace and efficiency statistics for one game.
type Summary struct {
	TotalMoves        int            `json:"total_moves"`
	SimplifiedMoves   int            `json:"simplified_moves"`
	Efficiency        float64        `json:"efficiency"`
	DurationMs        int64          `json:"duration_ms"`
	TPS               float64        `json:"tps"`
	AvgMoveDurationMs float64        `json:"avg_move_duration_ms"`
	LongestPauseMs    int64          `json:"longest_pause_ms"`
	Pauses            []PauseInfo    `json:"pauses,omitempty"`
	FrameCounts       map[string]int `json:"frame_counts"`
}

// PauseInfo is a gap between two moves.
type PauseInfo struct {
	AfterMoveIndex int   `json:"after_move_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// PauseThresholdMs is the gap that counts as a pause.
const PauseThresholdMs = 1500

// Summarize computes the summary of a game that lasted durationMs.
func Summarize(moves []TimedMove, durationMs int64) *Summary {
	s := &Summary{
		TotalMoves:  len(moves),
		DurationMs:  durationMs,
		FrameCounts: make(map[string]int),
	}

	s.SimplifiedMoves = len(Simplify(Untimed(moves)))
	if s.TotalMoves > 0 {
		s.Efficiency = float64(s.SimplifiedMoves) / float64(s.TotalMoves)
	}
	s.TPS = CalculateTPS(len(moves), durationMs)
	s.AvgMoveDurationMs = CalculateAvgMoveDuration(moves)
	s.Pauses = AnalyzePauses(moves, PauseThresholdMs)
	s.LongestPauseMs = FindLongestPause(moves)

	for _, m := range moves {
		s.FrameCounts[m.Move.Frame.String()]++
	}
	return s
}

// Simplify cancels turns that undo each other and folds four equal quarter
// turns into nothing. The result reaches the same state.
func Simplify(moves []cube.Move) []cube.Move {
	var out []cube.Move
	for _, m := range moves {
		n := len(out)
		switch {
		case n > 0 && out[n-1] == m.Inverse():
			out = out[:n-1]
		case n >= 3 && out[n-1] == m && out[n-2] == m && out[n-3] == m:
			out = out[:n-3]
		default:
			out = append(out, m)
		}
	}
	return out
}

// AnalyzePauses finds every gap of at least thresholdMs between moves.
func AnalyzePauses(moves []TimedMove, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo
	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterMoveIndex: i - 1,
				DurationMs:     gap,
				TsMs:           moves[i-1].TsMs,
			})
		}
	}
	return pauses
}

// CalculateTPS returns turns per second.
func CalculateTPS(moves int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(moves) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration returns the mean gap between moves.
func CalculateAvgMoveDuration(moves []TimedMove) float64 {
	if len(moves) < 2 {
		return 0
	}
	total := moves[len(moves)-1].TsMs - moves[0].TsMs
	return float64(total) / float64(len(moves)-1)
}

// FindLongestPause returns the longest gap between moves.
func FindLongestPause(moves []TimedMove) int64 {
	var longest int64
	for i := 1; i < len(moves); i++ {
		if gap := moves[i].TsMs - moves[i-1].TsMs; gap > longest {
			longest = gap
		}
	}
	return longest
}
