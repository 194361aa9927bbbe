// Package add implements the add command: install packages by inserting
// or re-enabling their lines in the managed file.
package add

import (
	"github.com/arthur-debert/annix/pkg/logging"
	"github.com/arthur-debert/annix/pkg/mutate"
	"github.com/arthur-debert/annix/pkg/store"
)

// Options defines the options for the add command
type Options struct {
	// Store is the managed file's store
	Store *store.Store
	// Packages are the names to add, in request order
	Packages []string
}

// Run adds the requested packages and reports what happened
func Run(opts Options) (*mutate.AddReport, error) {
	logger := logging.GetLogger("commands.add")
	logger.Debug().
		Str("file", opts.Store.Path()).
		Strs("packages", opts.Packages).
		Msg("Starting add command")

	report, err := mutate.NewEngine(opts.Store).Add(opts.Packages)
	if err != nil {
		logger.Error().Err(err).Msg("Add failed")
		return nil, err
	}

	logger.Info().
		Int("added", len(report.Added)).
		Int("reenabled", len(report.Reenabled)).
		Bool("changed", report.Changed).
		Msg("Add command completed")

	return report, nil
}
