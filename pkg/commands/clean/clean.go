// Package clean implements the clean command: delete every disabled
// package line from the managed file.
package clean

import (
	"github.com/arthur-debert/annix/pkg/logging"
	"github.com/arthur-debert/annix/pkg/mutate"
	"github.com/arthur-debert/annix/pkg/store"
)

// Options defines the options for the clean command
type Options struct {
	// Store is the managed file's store
	Store *store.Store
}

// Run deletes all disabled packages. Parse warnings are suppressed: this
// is a maintenance operation, not a user-directed edit.
func Run(opts Options) (*mutate.RemoveReport, error) {
	logger := logging.GetLogger("commands.clean")
	logger.Debug().Str("file", opts.Store.Path()).Msg("Starting clean command")

	report, err := mutate.NewEngine(opts.Store).Clean()
	if err != nil {
		logger.Error().Err(err).Msg("Clean failed")
		return nil, err
	}

	logger.Info().Int("deleted", len(report.Deleted)).Bool("changed", report.Changed).Msg("Clean command completed")
	return report, nil
}
