// Package recorder records played games into storage and an event log, and
// keeps player preferences between runs.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/glitchcube/internal/storage"
)

// AppState is the persistent preferences file.
type AppState struct {
	DBPath        string  `json:"db_path,omitempty"`
	CameraPreset  string  `json:"camera_preset,omitempty"`
	Muted         bool    `json:"muted"`
	DragThreshold float64 `json:"drag_threshold,omitempty"`
	LastGameID    string  `json:"last_game_id,omitempty"`
}

// StateFile manages the preferences file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns ~/.glitchcube/state.json.
func DefaultStatePath() (string, error) {
	dir, err := storage.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// NewStateFile loads path if it exists.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return sf, nil
}

// NewDefaultStateFile opens the preferences file at the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Load reads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	return nil
}

// Save writes the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(sf.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Path returns the file path.
func (sf *StateFile) Path() string {
	return sf.path
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetDBPath records the database path.
func (sf *StateFile) SetDBPath(path string) error {
	sf.state.DBPath = path
	return sf.Save()
}

// SetCameraPreset records the preferred camera preset.
func (sf *StateFile) SetCameraPreset(name string) error {
	sf.state.CameraPreset = name
	return sf.Save()
}

// SetMuted records the mute preference.
func (sf *StateFile) SetMuted(muted bool) error {
	sf.state.Muted = muted
	return sf.Save()
}

// SetDragThreshold records the preferred drag threshold in pixels.
func (sf *StateFile) SetDragThreshold(px float64) error {
	sf.state.DragThreshold = px
	return sf.Save()
}

// SetLastGame records the last game started.
func (sf *StateFile) SetLastGame(gameID string) error {
	sf.state.LastGameID = gameID
	return sf.Save()
}

// LastGameID returns the last game started.
func (sf *StateFile) LastGameID() string {
	return sf.state.LastGameID
}

// DBPath returns the recorded database path.
func (sf *StateFile) DBPath() string {
	return sf.state.DBPath
}
