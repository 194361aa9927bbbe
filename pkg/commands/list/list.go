// Package list implements the ls command: report the active and disabled
// packages declared in the managed file.
package list

import (
	"github.com/arthur-debert/annix/pkg/logging"
	"github.com/arthur-debert/annix/pkg/nixfile"
	"github.com/arthur-debert/annix/pkg/store"
)

// Options defines the options for the ls command
type Options struct {
	// Store is the managed file's store
	Store *store.Store
}

// Result holds the package listing
type Result struct {
	Active   []nixfile.Entry   `json:"active"`
	Disabled []nixfile.Entry   `json:"disabled"`
	Warnings []nixfile.Warning `json:"-"`
}

// Run parses the managed file and returns its package lists
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.list")

	buf, err := opts.Store.Read()
	if err != nil {
		return nil, err
	}
	doc, err := nixfile.Parse(buf, nixfile.ParseOptions{})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("active", len(doc.Active)).
		Int("disabled", len(doc.Disabled)).
		Msg("Ls command completed")

	return &Result{Active: doc.Active, Disabled: doc.Disabled, Warnings: doc.Warnings}, nil
}
