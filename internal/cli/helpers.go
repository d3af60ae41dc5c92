package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/recorder"
	"github.com/SeamusWaldron/glitchcube/internal/storage"
)

var errNoGames = errors.New("no games found")

func openDB() (*storage.DB, error) {
	var db *storage.DB
	var err error
	if dbPath == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(dbPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// gameOptions builds game options from the global flags and the saved
// preferences. prefs may be nil.
func gameOptions(cmd *cobra.Command, prefs *recorder.StateFile) []glitchcube.Option {
	var opts []glitchcube.Option
	if cmd.Flags().Changed("seed") {
		opts = append(opts, glitchcube.WithSeed(seed))
	}
	if prefs != nil {
		st := prefs.State()
		if st.CameraPreset != "" {
			opts = append(opts, glitchcube.WithCameraPreset(st.CameraPreset))
		}
		if st.DragThreshold > 0 {
			opts = append(opts, glitchcube.WithDragThreshold(st.DragThreshold))
		}
	}
	return opts
}

// resolveGame returns the game named by id, or the last game when last is
// set.
func resolveGame(db *storage.DB, id string, last bool) (*storage.Game, error) {
	if id == "" && !last {
		return nil, fmt.Errorf("specify a game ID or --last")
	}
	repo := storage.NewGameRepository(db)

	var g *storage.Game
	var err error
	if last {
		g, err = repo.GetLast()
	} else {
		g, err = repo.Get(id)
	}
	if err != nil {
		return nil, err
	}
	if g == nil {
		if last {
			return nil, errNoGames
		}
		return nil, fmt.Errorf("game not found: %s", id)
	}
	return g, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
