// Package config loads the annix runtime configuration: built-in defaults,
// overlaid by an optional TOML file, overlaid by ANNIX_* environment
// variables. The result is an immutable struct constructed once at startup
// and threaded into every component that needs it.
package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/arthur-debert/annix/pkg/utils"
)

// Config holds every tunable annix parameter
type Config struct {
	// File is the managed Nix file
	File string `koanf:"file"`

	// RebuildCommand is the argv used to rebuild the system
	RebuildCommand []string `koanf:"rebuild_command"`

	// MinWrapWidth is the minimum terminal width for wrapping search
	// output; narrower terminals get unwrapped lines
	MinWrapWidth int `koanf:"min_wrap_width"`

	// GateFingerprint makes sync skip the fingerprint-marker update when
	// the rebuild command fails. Off by default: the marker is updated
	// unconditionally after a rebuild attempt.
	GateFingerprint bool `koanf:"gate_fingerprint"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		File:            "/etc/nixos/an.nix",
		RebuildCommand:  []string{"nixos", "rebuild-switch"},
		MinWrapWidth:    10,
		GateFingerprint: false,
	}
}

// Load builds the configuration from defaults, the TOML file at path (if
// it exists), and ANNIX_* environment variables, in that precedence order.
// An empty path skips the file layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"file":             def.File,
		"rebuild_command":  def.RebuildCommand,
		"min_wrap_width":   def.MinWrapWidth,
		"gate_fingerprint": def.GateFingerprint,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
			}
		}
	}

	if err := k.Load(env.Provider("ANNIX_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ANNIX_"))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(" "),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.File = utils.ExpandPath(cfg.File)
	return &cfg, nil
}
