package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrz1836/conductor/internal/constants"
	"github.com/mrz1836/conductor/internal/errors"
)

// GlobalConfigDir returns the path to the global Conductor configuration directory.
// This is typically ~/.conductor on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.ConductorHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration directory.
// This is always .conductor relative to the project root.
func ProjectConfigDir() string {
	return constants.ConductorHome
}

// GlobalConfigPath returns the full path to the global configuration file.
// This is typically ~/.conductor/config.yaml on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
// This is always .conductor/config.yaml relative to the project root.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.yaml")
}
