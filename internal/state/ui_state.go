package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/celebtour/internal/logger"
)

// UIState holds persistent UI preferences that carry across runs.
type UIState struct {
	Upload UploadState `json:"upload"`
	Tour   TourState   `json:"tour"`
}

// UploadState remembers where the photo picker was last used.
type UploadState struct {
	LastDir string `json:"last_dir,omitempty"`
}

// TourState holds the tour page display preferences.
type TourState struct {
	Fullscreen bool `json:"fullscreen"`
}

// DefaultUIState returns the default UI state with sensible defaults.
func DefaultUIState() *UIState {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return &UIState{
		Upload: UploadState{LastDir: dir},
	}
}

// Load reads the UI state from <dataDir>/ui-state.json.
// Returns default state if the file doesn't exist or on error.
func Load(dataDir string) *UIState {
	path := filepath.Join(dataDir, "ui-state.json")

	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultUIState()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read UI state file: %v", err)
		return DefaultUIState()
	}

	state := DefaultUIState()
	if err := json.Unmarshal(data, state); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return DefaultUIState()
	}

	// A remembered directory that has since been removed falls back to the default
	if info, err := os.Stat(state.Upload.LastDir); err != nil || !info.IsDir() {
		state.Upload.LastDir = DefaultUIState().Upload.LastDir
	}

	return state
}

// Save writes the UI state to <dataDir>/ui-state.json.
// Creates the data directory if it doesn't exist.
func Save(dataDir string, state *UIState) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, "ui-state.json")

	// Marshal to JSON with indentation for readability
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", path)
	return nil
}
