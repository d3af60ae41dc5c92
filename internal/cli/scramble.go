package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
)

var scrambleLength int

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Print a scramble and the resulting cube",
	Long: `Generate a scramble, print it in face and frame notation, and print the
facelet net of the scrambled cube. Use --seed for a reproducible scramble.`,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVar(&scrambleLength, "length", 0, "Exact number of turns (default: random 20-100)")
}

func runScramble(cmd *cobra.Command, args []string) error {
	opts := gameOptions(cmd, nil)
	if scrambleLength > 0 {
		opts = append(opts, glitchcube.WithScrambleLength(scrambleLength, scrambleLength))
	}
	g := glitchcube.New(opts...)
	s := g.Scramble()

	fmt.Printf("Scramble (%d turns):\n", len(s))
	fmt.Println(glitchcube.FormatNotation(s))
	fmt.Println(cube.FormatMoves(s))
	fmt.Println()
	fmt.Println(g.Net().String())
	return nil
}
