package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/storage"
)

var (
	exportGameID string
	exportFormat string
	exportOutput string
	exportLast   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the moves of a game",
	Long: `Export the move sequence of a game in text or JSON format.

Examples:
  glitchcube export --last
  glitchcube export --id <game_id> --format json
  glitchcube export --id <game_id> --format txt -o moves.txt`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportGameID, "id", "", "Game ID to export")
	exportCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last game")
	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// exportedMove is one move in JSON exports.
type exportedMove struct {
	Seq      int    `json:"seq"`
	TsMs     int64  `json:"ts_ms"`
	Notation string `json:"notation"`
	Face     string `json:"face,omitempty"`
}

type exportedGame struct {
	GameID   string         `json:"game_id"`
	Scramble string         `json:"scramble,omitempty"`
	Solved   bool           `json:"solved"`
	Moves    []exportedMove `json:"moves"`
}

// formatExport renders a game's moves as txt or json.
func formatExport(g *storage.Game, recs []storage.MoveRecord, format string) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		notations := make([]string, len(recs))
		for i, r := range recs {
			notations[i] = r.Notation
		}
		return strings.Join(notations, " "), nil

	case "json":
		out := exportedGame{GameID: g.GameID, Solved: g.Solved, Moves: []exportedMove{}}
		if g.ScrambleText != nil {
			out.Scramble = *g.ScrambleText
		}
		moves, err := storage.ToMoves(recs)
		if err != nil {
			return "", err
		}
		for i, r := range recs {
			em := exportedMove{Seq: r.Seq, TsMs: r.TsMs, Notation: r.Notation}
			if fm, ok := glitchcube.FromFrameMove(moves[i]); ok {
				em.Face = fm.Notation()
			}
			out.Moves = append(out.Moves, em)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt or json)", format)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportGameID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := resolveGame(db, exportGameID, exportLast)
	if err != nil {
		return err
	}

	recs, err := storage.NewMoveRepository(db).GetByGame(g.GameID)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no moves found for game %s", g.GameID)
	}

	output, err := formatExport(g, recs, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Println(output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Exported %d moves to %s\n", len(recs), exportOutput)
	return nil
}
