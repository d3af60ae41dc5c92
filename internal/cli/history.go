package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/glitchcube/internal/analysis"
	"github.com/SeamusWaldron/glitchcube/internal/storage"
)

var (
	historyLimit  int
	historyTrends bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List played games",
	Long:  `List recent games with their duration, move count and result.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of games to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyTrends, "trends", false, "Show progress across the listed games")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := storage.NewGameRepository(db).List(historyLimit)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("No games recorded yet")
		fmt.Println("Start one with: glitchcube play")
		return nil
	}

	fmt.Printf("Recent games (showing %d):\n", len(games))
	fmt.Println()
	fmt.Printf("%-36s  %-19s  %-10s  %-6s  %s\n", "ID", "Started", "Duration", "Moves", "Result")
	fmt.Println("------------------------------------  -------------------  ----------  ------  ---------")

	for _, g := range games {
		duration := "-"
		if g.DurationMs != nil {
			duration = formatDuration(g.Duration())
		}
		fmt.Printf("%-36s  %-19s  %-10s  %-6d  %s\n",
			g.GameID,
			g.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			g.MoveCount,
			result(&g),
		)
	}

	if historyTrends {
		fmt.Println()
		printTrends(analysis.AnalyzeTrends(gameData(games)))
	}
	return nil
}

func gameData(games []storage.Game) []analysis.GameData {
	out := make([]analysis.GameData, 0, len(games))
	for _, g := range games {
		d := analysis.GameData{
			GameID:    g.GameID,
			StartedAt: g.StartedAt,
			MoveCount: g.MoveCount,
			Solved:    g.Solved,
		}
		if g.DurationMs != nil {
			d.DurationMs = *g.DurationMs
		}
		out = append(out, d)
	}
	return out
}

func printTrends(r *analysis.TrendReport) {
	ms := func(v float64) string {
		return formatDuration(time.Duration(v) * time.Millisecond)
	}
	fmt.Printf("Trends over %d solved of %d games\n", r.SolvedGames, r.TotalGames)
	if r.SolvedGames == 0 {
		return
	}
	fmt.Printf("  Average:     %s, %.1f moves, %.2f turns/sec\n", ms(r.AvgDurationMs), r.AvgMoves, r.AvgTPS)
	fmt.Printf("  Fastest:     %s (%s)\n", ms(float64(r.Fastest.DurationMs)), shortID(r.Fastest.GameID))
	fmt.Printf("  Slowest:     %s (%s)\n", ms(float64(r.Slowest.DurationMs)), shortID(r.Slowest.GameID))
	fmt.Printf("  Improvement: %+.1f%%\n", r.ImprovementPct)
	fmt.Printf("  Consistency: %.0f/100\n", r.ConsistencyScore)
	for _, w := range []int{5, 10, 25, 50} {
		if avg, ok := r.RollingAvgs[w]; ok {
			fmt.Printf("  Last %-2d avg: %s\n", w, ms(avg))
		}
	}
}

func result(g *storage.Game) string {
	switch {
	case g.Solved:
		return "solved"
	case g.Finished():
		return "abandoned"
	default:
		return "running"
	}
}

func printStats(s storage.Stats) {
	fmt.Printf("Games played: %d\n", s.Played)
	fmt.Printf("Games solved: %d\n", s.Solved)
	if s.BestMoves != nil {
		fmt.Printf("Fewest moves: %d\n", *s.BestMoves)
	}
	if s.BestTimeMs != nil {
		fmt.Printf("Fastest:      %s\n", formatDuration(time.Duration(*s.BestTimeMs)*time.Millisecond))
	}
}
