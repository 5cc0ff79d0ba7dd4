package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for nbkit.
type Paths struct {
	// ConfigFile is the path to the config file (~/.nbkit/config.yaml).
	ConfigFile string

	// HomeDir is the nbkit home directory (~/.nbkit).
	HomeDir string
}

// DefaultPaths returns the default paths for nbkit.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	nbkitHome := filepath.Join(homeDir, ".nbkit")

	return &Paths{
		ConfigFile: filepath.Join(nbkitHome, "config.yaml"),
		HomeDir:    nbkitHome,
	}, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
