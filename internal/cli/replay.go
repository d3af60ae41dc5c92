package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/recorder"
	"github.com/SeamusWaldron/glitchcube/internal/storage"
)

var (
	replayLast    bool
	replayLogFile string
	replayNet     bool
	replayAnalyze bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [game_id]",
	Short: "Replay a recorded game and verify its result",
	Long: `Re-apply a recorded game's moves to its stored scramble on a fresh cube
and check the outcome against what was recorded.

Examples:
  glitchcube replay --last
  glitchcube replay <game_id> --net
  glitchcube replay --last --analyze
  glitchcube replay --log ~/.glitchcube/logs/games_20260101_120000.jsonl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the last game")
	replayCmd.Flags().StringVar(&replayLogFile, "log", "", "Replay the last game in a JSONL event log")
	replayCmd.Flags().BoolVar(&replayNet, "net", false, "Print the final facelet net")
	replayCmd.Flags().BoolVar(&replayAnalyze, "analyze", false, "Print pace, repeated sequences and known algorithms")
}

// replayResult is the outcome of re-applying a game.
type replayResult struct {
	Moves      int
	SolvedAt   int
	Solved     bool
	BestPlaced int
	Net        cube.Net
}

// replayMoves applies moves to scramble on a fresh tracker.
func replayMoves(scramble, moves []cube.Move) (replayResult, error) {
	t, err := glitchcube.NewTracker(scramble)
	if err != nil {
		return replayResult{}, fmt.Errorf("failed to apply scramble: %w", err)
	}
	if err := t.ApplyAll(moves); err != nil {
		return replayResult{}, fmt.Errorf("failed to apply moves: %w", err)
	}

	r := replayResult{
		Moves:      len(moves),
		Solved:     t.IsSolved(),
		BestPlaced: t.BestPlaced(),
		Net:        t.Net(),
		SolvedAt:   -1,
	}
	if at, ok := t.SolvedAt(); ok {
		r.SolvedAt = at
	}
	return r, nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	if replayLogFile != "" {
		return replayFromLog(replayLogFile)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	g, err := resolveGame(db, id, replayLast)
	if err != nil {
		return err
	}

	var scramble []cube.Move
	if g.ScrambleText != nil {
		scramble, err = cube.ParseMoves(*g.ScrambleText)
		if err != nil {
			return fmt.Errorf("stored scramble is invalid: %w", err)
		}
	}
	recs, err := storage.NewMoveRepository(db).GetByGame(g.GameID)
	if err != nil {
		return err
	}
	moves, err := storage.ToMoves(recs)
	if err != nil {
		return err
	}

	fmt.Printf("Game:     %s\n", g.GameID)
	fmt.Printf("Started:  %s\n", g.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Scramble: %s\n", glitchcube.FormatNotation(scramble))
	fmt.Printf("Moves:    %s\n", glitchcube.FormatNotation(moves))
	fmt.Println()

	r, err := replayMoves(scramble, moves)
	if err != nil {
		return err
	}
	printReplay(r)

	if replayAnalyze {
		timed, err := timedMoves(recs)
		if err != nil {
			return err
		}
		var durationMs int64
		if g.DurationMs != nil {
			durationMs = *g.DurationMs
		} else if len(timed) > 0 {
			durationMs = timed[len(timed)-1].TsMs
		}
		fmt.Println()
		writeAnalysis(os.Stdout, timed, durationMs)
		fmt.Println()
	}

	if g.Finished() && r.Solved != g.Solved {
		return fmt.Errorf("replay disagrees with the record: replayed solved=%v, recorded solved=%v", r.Solved, g.Solved)
	}
	if g.Finished() {
		fmt.Println("Replay matches the record")
	}
	return nil
}

func replayFromLog(path string) error {
	log, err := recorder.LoadEventLog(path)
	if err != nil {
		return err
	}

	var scramble, moves []cube.Move
	found := false
	for _, e := range log.Events {
		switch e.EventType {
		case recorder.LogEventStart:
			found = true
			moves = nil
			scramble, err = cube.ParseMoves(e.Scramble)
			if err != nil {
				return fmt.Errorf("logged scramble is invalid: %w", err)
			}
		case recorder.LogEventMove:
			m, err := cube.ParseMove(e.Move)
			if err != nil {
				return fmt.Errorf("logged move is invalid: %w", err)
			}
			moves = append(moves, m)
		}
	}
	if !found {
		return errNoGames
	}

	fmt.Printf("Log:      %s\n", path)
	fmt.Printf("Scramble: %s\n", glitchcube.FormatNotation(scramble))
	fmt.Printf("Moves:    %s\n", glitchcube.FormatNotation(moves))
	fmt.Println()

	r, err := replayMoves(scramble, moves)
	if err != nil {
		return err
	}
	printReplay(r)
	return nil
}

func printReplay(r replayResult) {
	if r.SolvedAt >= 0 {
		fmt.Printf("Solved after %d of %d moves\n", r.SolvedAt, r.Moves)
	} else {
		fmt.Printf("Not solved after %d moves (best: %d of %d pieces home)\n", r.Moves, r.BestPlaced, cube.CellCount)
	}
	if replayNet {
		fmt.Println()
		fmt.Println(r.Net.String())
	}
}
