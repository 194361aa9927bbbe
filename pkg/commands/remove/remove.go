// Package remove implements the rm command: disable packages, or delete
// their lines outright.
package remove

import (
	"github.com/arthur-debert/annix/pkg/logging"
	"github.com/arthur-debert/annix/pkg/mutate"
	"github.com/arthur-debert/annix/pkg/store"
)

// Options defines the options for the rm command
type Options struct {
	// Store is the managed file's store
	Store *store.Store
	// Packages are the names to remove
	Packages []string
	// Delete removes lines instead of disabling them
	Delete bool
	// AllInstances processes every matching line, not just the first
	AllInstances bool
	// DisabledOnly restricts matching to already-disabled entries
	DisabledOnly bool
}

// Run removes the requested packages and reports what happened
func Run(opts Options) (*mutate.RemoveReport, error) {
	logger := logging.GetLogger("commands.remove")
	logger.Debug().
		Str("file", opts.Store.Path()).
		Strs("packages", opts.Packages).
		Bool("delete", opts.Delete).
		Bool("allInstances", opts.AllInstances).
		Msg("Starting rm command")

	scope := mutate.ScopeAll
	if opts.DisabledOnly {
		scope = mutate.ScopeDisabled
	}

	report, err := mutate.NewEngine(opts.Store).Remove(opts.Packages, mutate.RemoveOptions{
		Scope:        scope,
		Delete:       opts.Delete,
		AllInstances: opts.AllInstances,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Remove failed")
		return nil, err
	}

	logger.Info().
		Int("disabled", len(report.Disabled)).
		Int("deleted", len(report.Deleted)).
		Bool("changed", report.Changed).
		Msg("Rm command completed")

	return report, nil
}
