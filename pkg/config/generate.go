package config

import (
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/annix/pkg/errors"
)

// DefaultTOML renders the built-in defaults as a TOML document, suitable
// for seeding a user config file via `annix genconfig`.
func DefaultTOML() ([]byte, error) {
	def := Default()
	out, err := gotoml.Marshal(map[string]interface{}{
		"file":             def.File,
		"rebuild_command":  def.RebuildCommand,
		"min_wrap_width":   def.MinWrapWidth,
		"gate_fingerprint": def.GateFingerprint,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render default config")
	}
	return out, nil
}
