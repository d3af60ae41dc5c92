package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/glitchcube/internal/recorder"
	"github.com/SeamusWaldron/glitchcube/internal/storage"
)

var (
	prefsCamera    string
	prefsMute      bool
	prefsUnmute    bool
	prefsThreshold float64
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show preferences and game statistics",
	RunE:  runStatus,
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Change saved preferences",
	Long: `Change the preferences used by 'play' and 'window'.

Examples:
  glitchcube prefs --camera iso
  glitchcube prefs --mute
  glitchcube prefs --drag-threshold 40`,
	RunE: runPrefs,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.Flags().StringVar(&prefsCamera, "camera", "", "Camera preset (default, iso)")
	prefsCmd.Flags().BoolVar(&prefsMute, "mute", false, "Mute turn sounds")
	prefsCmd.Flags().BoolVar(&prefsUnmute, "unmute", false, "Unmute turn sounds")
	prefsCmd.Flags().Float64Var(&prefsThreshold, "drag-threshold", 0, "Window drag threshold in pixels")
	prefsCmd.MarkFlagsMutuallyExclusive("mute", "unmute")
}

func runStatus(cmd *cobra.Command, args []string) error {
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	state := stateFile.State()

	fmt.Println("glitchcube status")
	fmt.Println("=================")
	fmt.Println()

	path := dbPath
	if path == "" {
		path, _ = storage.DefaultDBPath()
	}
	fmt.Printf("Database:    %s\n", path)
	fmt.Printf("Preferences: %s\n", stateFile.Path())
	fmt.Println()

	camera := state.CameraPreset
	if camera == "" {
		camera = "default"
	}
	fmt.Printf("Camera:         %s\n", camera)
	fmt.Printf("Muted:          %v\n", state.Muted)
	if state.DragThreshold > 0 {
		fmt.Printf("Drag threshold: %.0fpx\n", state.DragThreshold)
	}
	fmt.Println()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := storage.NewGameRepository(db).Stats()
	if err != nil {
		return err
	}
	printStats(stats)
	if state.LastGameID != "" {
		fmt.Printf("Last game:    %s\n", state.LastGameID)
	}
	return nil
}

func runPrefs(cmd *cobra.Command, args []string) error {
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	changed := false
	if cmd.Flags().Changed("camera") {
		if prefsCamera != "default" && prefsCamera != "iso" {
			return fmt.Errorf("unknown camera preset: %s (use default or iso)", prefsCamera)
		}
		if err := stateFile.SetCameraPreset(prefsCamera); err != nil {
			return err
		}
		changed = true
	}
	if prefsMute || prefsUnmute {
		if err := stateFile.SetMuted(prefsMute); err != nil {
			return err
		}
		changed = true
	}
	if cmd.Flags().Changed("drag-threshold") {
		if prefsThreshold < 0 {
			return fmt.Errorf("drag threshold must not be negative")
		}
		if err := stateFile.SetDragThreshold(prefsThreshold); err != nil {
			return err
		}
		changed = true
	}

	if !changed {
		return cmd.Help()
	}
	fmt.Printf("Saved preferences to %s\n", stateFile.Path())
	return nil
}
