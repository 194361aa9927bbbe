// Package paths provides centralized path handling for annix, following
// the XDG Base Directory specification for annix's own files. The managed
// Nix file path itself is configuration, not a path concern (see
// pkg/config).
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigFile overrides the location of the annix config file
	EnvConfigFile = "ANNIX_CONFIG"
)

// AppDirName is the directory name annix uses under the XDG directories
const AppDirName = "annix"

// ConfigFile returns the path of the annix configuration file:
// $ANNIX_CONFIG if set, otherwise annix/annix.toml under the XDG config
// directory.
func ConfigFile() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, "annix.toml")
}

// StateDir returns the XDG state directory for annix (log files)
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppDirName)
}
