// Package sync implements the sync command: rebuild the system when the
// managed file's content fingerprint differs from the stored marker, then
// reconcile the marker.
package sync

import (
	"github.com/arthur-debert/annix/pkg/fingerprint"
	"github.com/arthur-debert/annix/pkg/logging"
	"github.com/arthur-debert/annix/pkg/mutate"
	"github.com/arthur-debert/annix/pkg/nixfile"
	"github.com/arthur-debert/annix/pkg/store"
)

// Rebuilder runs the system rebuild command
type Rebuilder interface {
	Run() error
}

// Options defines the options for the sync command
type Options struct {
	// Store is the managed file's store
	Store *store.Store
	// Rebuilder runs the configured rebuild command
	Rebuilder Rebuilder
	// Force rebuilds even when the fingerprint is current
	Force bool
	// GateFingerprint skips the marker update when the rebuild fails,
	// instead of updating it unconditionally
	GateFingerprint bool
}

// Result reports what sync did
type Result struct {
	// NeedsRebuild is the fingerprint comparison outcome before any rebuild
	NeedsRebuild bool
	// Rebuilt reports whether the rebuild command ran successfully
	Rebuilt bool
	// RebuildError is the rebuild failure, if any
	RebuildError error
	// FingerprintUpdated reports whether the stored marker was rewritten
	FingerprintUpdated bool
	// Warnings collected by the parse backing the decision
	Warnings []nixfile.Warning
}

// Run compares the stored fingerprint against the computed one, rebuilds
// if needed (or forced), and reconciles the stored marker.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.sync")
	result := &Result{}

	buf, err := opts.Store.Read()
	if err != nil {
		return nil, err
	}
	doc, err := nixfile.Parse(buf, nixfile.ParseOptions{})
	if err != nil {
		return nil, err
	}
	result.Warnings = doc.Warnings
	result.NeedsRebuild = fingerprint.NeedsRebuild(doc)

	logger.Debug().
		Bool("needsRebuild", result.NeedsRebuild).
		Bool("force", opts.Force).
		Msg("Starting sync command")

	if opts.Force || result.NeedsRebuild {
		if err := opts.Rebuilder.Run(); err != nil {
			result.RebuildError = err
			if opts.GateFingerprint {
				logger.Warn().Err(err).Msg("Rebuild failed, fingerprint left untouched")
				return result, err
			}
			logger.Warn().Err(err).Msg("Rebuild failed, fingerprint updated anyway")
		} else {
			result.Rebuilt = true
		}
	}

	updated, err := mutate.NewEngine(opts.Store).UpdateFingerprint()
	if err != nil {
		return result, err
	}
	result.FingerprintUpdated = updated

	logger.Info().
		Bool("rebuilt", result.Rebuilt).
		Bool("fingerprintUpdated", updated).
		Msg("Sync command completed")

	return result, result.RebuildError
}
