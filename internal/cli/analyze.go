package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/analysis"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/storage"
)

// timedMoves converts stored move records for analysis.
func timedMoves(recs []storage.MoveRecord) ([]analysis.TimedMove, error) {
	out := make([]analysis.TimedMove, 0, len(recs))
	for _, r := range recs {
		m, err := cube.ParseMove(r.Notation)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", r.Seq, err)
		}
		out = append(out, analysis.TimedMove{Move: m, TsMs: r.TsMs})
	}
	return out, nil
}

// writeAnalysis prints pace, repeated sequences and known algorithms.
func writeAnalysis(w io.Writer, moves []analysis.TimedMove, durationMs int64) {
	s := analysis.Summarize(moves, durationMs)

	fmt.Fprintln(w, "Analysis")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Moves:        %d (%d after cancelling, %.0f%% efficient)\n",
		s.TotalMoves, s.SimplifiedMoves, s.Efficiency*100)
	fmt.Fprintf(w, "Turns/sec:    %.2f\n", s.TPS)
	fmt.Fprintf(w, "Avg gap:      %.0fms\n", s.AvgMoveDurationMs)
	fmt.Fprintf(w, "Pauses:       %d (longest %s)\n", len(s.Pauses), formatDuration(time.Duration(s.LongestPauseMs)*time.Millisecond))

	report := analysis.MineNGrams(moves, 2, 6, 3)
	if len(report.TopNGrams) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Repeated sequences:")
		for n := 2; n <= 6; n++ {
			for _, ng := range report.TopNGrams[n] {
				fmt.Fprintf(w, "  %-24s x%d\n", glitchcube.FormatNotation(ng.Sequence), ng.Count)
			}
		}
	}

	algs := analysis.DetectAlgorithms(moves)
	if len(algs.Matches) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Algorithms:")
		for _, name := range algs.Names() {
			fmt.Fprintf(w, "  %-24s x%d\n", name, algs.Counts[name])
		}
		if algs.ConsecutiveRepeats > 0 {
			fmt.Fprintf(w, "  %d back-to-back repeats\n", algs.ConsecutiveRepeats)
		}
	}
}
