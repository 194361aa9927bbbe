// Package save implements the save command: copy the managed file to a
// named snapshot (an_<name>.nix) in the same directory.
package save

import (
	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/arthur-debert/annix/pkg/logging"
	"github.com/arthur-debert/annix/pkg/store"
)

// Options defines the options for the save command
type Options struct {
	// Store is the managed file's store
	Store *store.Store
	// Name is the snapshot name; whitespace is squashed
	Name string
	// Overwrite allows replacing an existing snapshot
	Overwrite bool
}

// Result reports where the snapshot was written
type Result struct {
	Path string
}

// Run copies the managed file to its snapshot path. When the destination
// exists and Overwrite is false, it fails with ALREADY_EXISTS so the
// caller can confirm and retry.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.save")

	dest, err := opts.Store.SavePath(opts.Name)
	if err != nil {
		return nil, err
	}

	if !opts.Overwrite && opts.Store.Exists(dest) {
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s already exists", dest)
	}

	if err := opts.Store.SaveAs(dest); err != nil {
		return nil, err
	}

	logger.Info().Str("dest", dest).Msg("Configuration saved")
	return &Result{Path: dest}, nil
}
