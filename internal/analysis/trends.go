package analysis

import (
	"math"
	"sort"
	"time"
)

// GameData is the per-game input to trend analysis.
type GameData struct {
	GameID     string
	StartedAt  time.Time
	DurationMs int64
	MoveCount  int
	Solved     bool
}

// GameStats is one solved game in a trend report.
type GameStats struct {
	GameID     string  `json:"game_id"`
	Timestamp  string  `json:"timestamp"`
	DurationMs int64   `json:"duration_ms"`
	MoveCount  int     `json:"move_count"`
	TPS        float64 `json:"tps"`
}

// TrendReport describes progress across games. Only solved games feed the
// averages.
type TrendReport struct {
	TotalGames  int `json:"total_games"`
	SolvedGames int `json:"solved_games"`

	AvgDurationMs float64 `json:"avg_duration_ms"`
	AvgMoves      float64 `json:"avg_moves"`
	AvgTPS        float64 `json:"avg_tps"`

	Fastest GameStats `json:"fastest"`
	Slowest GameStats `json:"slowest"`

	ImprovementPct   float64 `json:"improvement_pct"`
	ConsistencyScore float64 `json:"consistency_score"`

	// Rolling mean duration over the last 5, 10, 25 and 50 solves.
	RollingAvgs map[int]float64 `json:"rolling_averages"`

	Games []GameStats `json:"games"`
}

// AnalyzeTrends orders games by start time and summarises the solved ones.
func AnalyzeTrends(games []GameData) *TrendReport {
	report := &TrendReport{
		TotalGames:  len(games),
		RollingAvgs: make(map[int]float64),
		Games:       []GameStats{},
	}

	sorted := make([]GameData, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.Before(sorted[j].StartedAt)
	})

	var solved []GameData
	var totalDuration, totalMoves int64
	var totalTPS float64
	for _, g := range sorted {
		if !g.Solved || g.DurationMs <= 0 {
			continue
		}
		solved = append(solved, g)
		st := gameStats(g)
		report.Games = append(report.Games, st)
		totalDuration += g.DurationMs
		totalMoves += int64(g.MoveCount)
		totalTPS += st.TPS

		if len(solved) == 1 || g.DurationMs < report.Fastest.DurationMs {
			report.Fastest = st
		}
		if len(solved) == 1 || g.DurationMs > report.Slowest.DurationMs {
			report.Slowest = st
		}
	}

	report.SolvedGames = len(solved)
	if len(solved) == 0 {
		return report
	}
	n := float64(len(solved))
	report.AvgDurationMs = float64(totalDuration) / n
	report.AvgMoves = float64(totalMoves) / n
	report.AvgTPS = totalTPS / n

	report.ImprovementPct = improvement(solved)
	report.ConsistencyScore = consistency(solved)

	for _, w := range []int{5, 10, 25, 50} {
		if len(solved) < w {
			break
		}
		var sum int64
		for _, g := range solved[len(solved)-w:] {
			sum += g.DurationMs
		}
		report.RollingAvgs[w] = float64(sum) / float64(w)
	}
	return report
}

func gameStats(g GameData) GameStats {
	return GameStats{
		GameID:     g.GameID,
		Timestamp:  g.StartedAt.Format(time.RFC3339),
		DurationMs: g.DurationMs,
		MoveCount:  g.MoveCount,
		TPS:        CalculateTPS(g.MoveCount, g.DurationMs),
	}
}

// improvement compares the mean duration of the first and last quarter of
// games. Positive means faster.
func improvement(games []GameData) float64 {
	if len(games) < 4 {
		return 0
	}
	q := len(games) / 4

	var first, last int64
	for i := 0; i < q; i++ {
		first += games[i].DurationMs
		last += games[len(games)-q+i].DurationMs
	}
	if first <= 0 {
		return 0
	}
	return float64(first-last) / float64(first) * 100
}

// consistency maps the coefficient of variation of durations to 0..100.
func consistency(games []GameData) float64 {
	if len(games) < 2 {
		return 100
	}
	var sum float64
	for _, g := range games {
		sum += float64(g.DurationMs)
	}
	mean := sum / float64(len(games))

	var sq float64
	for _, g := range games {
		d := float64(g.DurationMs) - mean
		sq += d * d
	}
	cv := math.Sqrt(sq/float64(len(games))) / mean
	return math.Max(0, math.Min(100, 100-cv*100))
}
