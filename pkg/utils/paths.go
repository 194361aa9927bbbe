// Package utils holds small helpers with no better home.
package utils

import (
	"os"
	"path/filepath"
)

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return os.ExpandEnv(path)
}
