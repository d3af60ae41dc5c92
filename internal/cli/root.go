// Package cli implements the command-line interface for glitchcube.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/glitchcube"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath  string
	verbose bool
	seed    uint64
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "glitchcube",
	Short: "Interactive 3x3 cube puzzle",
	Long: `glitchcube - an interactive 3x3 twisty cube you turn by dragging across
its stickers.

Play in the terminal or in a desktop window, render snapshots, and look back
over the games you played.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		glitchcube.SetLogger(newLogger(os.Stderr))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.glitchcube/games.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed for reproducible scrambles")
}

// newLogger returns a text logger on w at the level selected by --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
