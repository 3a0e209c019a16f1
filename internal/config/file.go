package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the config file searched for by FindFile.
const FileName = ".uismoke.yaml"

// ErrNoConfigFile is returned by FindFile when the search finds nothing.
var ErrNoConfigFile = errors.New(FileName + " file not found")

// FindFile returns explicitPath if it exists. Otherwise it walks up from
// startDir looking for FileName, stopping at the home directory, a
// repository root or the filesystem root.
func FindFile(startDir, explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		return explicitPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		path := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		if currentDir == homeDir {
			break
		}

		if _, err := os.Stat(filepath.Join(currentDir, ".git")); err == nil {
			break
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", ErrNoConfigFile
}
