package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/recorder"
	"github.com/SeamusWaldron/glitchcube/internal/sound"
	"github.com/SeamusWaldron/glitchcube/internal/window"
)

var (
	windowWidth    int
	windowHeight   int
	windowNoRecord bool
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play with the mouse.

Drag across stickers of one face to turn a layer, drag elsewhere or use the
arrow keys to orbit, scroll to zoom, right click to cancel a drag. The turn
keys are the same as in 'glitchcube play'; n starts a new game, p pauses and
Esc quits.`,
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
	windowCmd.Flags().IntVar(&windowWidth, "width", 800, "Window width in pixels")
	windowCmd.Flags().IntVar(&windowHeight, "height", 600, "Window height in pixels")
	windowCmd.Flags().BoolVar(&windowNoRecord, "no-record", false, "Do not store games in the database")
}

func runWindow(cmd *cobra.Command, args []string) error {
	logger := glitchcube.Logger()

	prefs, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	opts := append(gameOptions(cmd, prefs),
		glitchcube.WithViewport(float64(windowWidth), float64(windowHeight)))
	game := glitchcube.New(opts...)

	player := sound.NewPlayer(logger)
	if err := player.Init(); err != nil {
		logger.Warn("sound disabled", "error", err)
	}
	defer player.Close()
	player.SetMuted(prefs.State().Muted)
	game.OnMoveStart(func(cube.Move) { player.PlayCue() })

	if !windowNoRecord {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		session := recorder.NewSession(db, prefs, nil, logger)
		if err := session.Attach(game); err != nil {
			return fmt.Errorf("failed to start recording: %w", err)
		}
		defer session.Close()
	}

	return window.New(game, "glitchcube", logger).Run()
}
