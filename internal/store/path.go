package store

import (
	"os"
	"path/filepath"
)

// DefaultDataDir returns the directory holding HawkFuel's local data.
// Defaults to ~/.hawkfuel, falls back to ./.hawkfuel if the home
// directory is unavailable.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		cwd, _ := os.Getwd()
		return filepath.Join(cwd, ".hawkfuel")
	}
	return filepath.Join(home, ".hawkfuel")
}

// DBPath returns the full path to the local database file.
func DBPath() string {
	return filepath.Join(DefaultDataDir(), "hawkfuel.db")
}
