// Package prefs stores small UI preferences between runs.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const uiFile = "ui.json"

// UI is what the terminal UI remembers between runs.
type UI struct {
	HomeFilter string `json:"home_filter,omitempty"`
}

// Store reads and writes preferences under Dir. A nil Store remembers nothing.
type Store struct {
	Dir string
}

func DefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &Store{Dir: filepath.Join(dir, "inventory")}, nil
}

func (s *Store) SaveUI(ui UI) error {
	if s == nil {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(ui, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.Dir, uiFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadUI returns the saved preferences, or the zero value when none exist.
func (s *Store) LoadUI() (UI, error) {
	var ui UI
	if s == nil {
		return ui, nil
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, uiFile))
	if err != nil {
		if os.IsNotExist(err) {
			return ui, nil
		}
		return ui, err
	}
	if err := json.Unmarshal(data, &ui); err != nil {
		return UI{}, err
	}
	return ui, nil
}
