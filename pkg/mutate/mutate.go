// Package mutate implements the mutation engine for the managed Nix file:
// adding, disabling, re-enabling and deleting package lines while leaving
// every other line byte-identical. All operations are read-compute-write
// against the whole line buffer; a batch either writes completely or, when
// nothing changed or an I/O error occurred, not at all.
package mutate

import (
	"sort"
	"strings"

	"github.com/arthur-debert/annix/pkg/fingerprint"
	"github.com/arthur-debert/annix/pkg/logging"
	"github.com/arthur-debert/annix/pkg/nixfile"
	"github.com/arthur-debert/annix/pkg/store"
)

// Engine applies batched mutations to one managed file
type Engine struct {
	store *store.Store
}

// NewEngine creates a mutation engine over the given store
func NewEngine(st *store.Store) *Engine {
	return &Engine{store: st}
}

// AddReport describes what an Add batch did
type AddReport struct {
	// Added are names inserted as new lines, in request order
	Added []string
	// Reenabled are names whose disabled line was rewritten to active, sorted
	Reenabled []string
	// AlreadyInstalled are names that were active already, sorted
	AlreadyInstalled []string
	// Warnings collected by the parse backing this batch
	Warnings []nixfile.Warning
	// Changed reports whether the file was written
	Changed bool
}

// Add inserts or re-enables the given packages. Names are deduplicated
// keeping first occurrence; already-active names are no-ops. Insertions
// land adjacent to one another so the batch keeps its requested order in
// the file.
func (e *Engine) Add(names []string) (*AddReport, error) {
	logger := logging.GetLogger("mutate")
	report := &AddReport{}

	names = dedupe(names)
	if len(names) == 0 {
		return report, nil
	}

	buf, err := e.store.Read()
	if err != nil {
		return nil, err
	}
	doc, err := nixfile.Parse(buf, nixfile.ParseOptions{})
	if err != nil {
		return nil, err
	}
	report.Warnings = doc.Warnings

	above, line := insertionPoint(doc, buf)

	// insertBase is the buffer position where new lines go. The cursor
	// advances past each insertion; entry indices captured by the parse
	// shift by the number of lines inserted before them.
	insertBase := line
	if !above {
		insertBase = line + 1
	}
	cursor := insertBase
	inserted := 0
	adjust := func(i int) int {
		if i >= insertBase {
			return i + inserted
		}
		return i
	}

	activeNames := doc.ActiveNames()

	for _, name := range names {
		if activeNames[name] {
			report.AlreadyInstalled = append(report.AlreadyInstalled, name)
			continue
		}

		if entry, ok := firstEntry(doc.Disabled, name); ok {
			buf.SetLine(adjust(entry.Line), nixfile.Indent+name+entry.Comment)
			report.Reenabled = append(report.Reenabled, name)
			continue
		}

		buf.Insert(cursor, nixfile.Indent+name)
		cursor++
		inserted++
		report.Added = append(report.Added, name)
	}

	sort.Strings(report.Reenabled)
	sort.Strings(report.AlreadyInstalled)

	if len(report.Added) == 0 && len(report.Reenabled) == 0 {
		logger.Debug().Strs("names", names).Msg("Add was a no-op")
		return report, nil
	}

	if err := e.store.Write(buf); err != nil {
		return nil, err
	}
	report.Changed = true

	logger.Info().
		Strs("added", report.Added).
		Strs("reenabled", report.Reenabled).
		Msg("Packages added")

	return report, nil
}

// Scope selects which package lists a Remove batch matches against
type Scope int

const (
	ScopeAll Scope = iota
	ScopeActive
	ScopeDisabled
)

// RemoveOptions controls a Remove batch
type RemoveOptions struct {
	Scope Scope
	// Delete removes matched lines instead of disabling them. Lines with
	// a trailing comment are rewritten to keep just the comment.
	Delete bool
	// AllInstances processes every match per name, not just the first
	AllInstances bool
	// SuppressWarnings silences parse warnings (internal re-parses)
	SuppressWarnings bool
}

// RemoveReport describes what a Remove batch did
type RemoveReport struct {
	// Disabled are names whose active line was rewritten to disabled form
	Disabled []string
	// Deleted are names whose lines were removed (or stripped to comment)
	Deleted []string
	// Warnings collected by the parse backing this batch
	Warnings []nixfile.Warning
	// Changed reports whether the file was written
	Changed bool
}

// Remove disables or deletes the given packages. Matches are processed in
// file order; scheduled line removals are applied last in descending index
// order so earlier removals never invalidate later indices.
func (e *Engine) Remove(names []string, opts RemoveOptions) (*RemoveReport, error) {
	logger := logging.GetLogger("mutate")
	report := &RemoveReport{}

	names = dedupe(names)
	if len(names) == 0 {
		return report, nil
	}

	buf, err := e.store.Read()
	if err != nil {
		return nil, err
	}
	doc, err := nixfile.Parse(buf, nixfile.ParseOptions{SuppressWarnings: opts.SuppressWarnings})
	if err != nil {
		return nil, err
	}
	report.Warnings = doc.Warnings

	var deadpool []int

	for _, name := range names {
		if opts.Scope == ScopeActive || opts.Scope == ScopeAll {
			for _, entry := range doc.Active {
				if entry.Name != name {
					continue
				}
				switch {
				case !opts.Delete:
					buf.SetLine(entry.Line, nixfile.Indent+nixfile.DisabledPrefix+" "+name+entry.Comment)
					report.Disabled = append(report.Disabled, name)
				case entry.Comment != "":
					buf.SetLine(entry.Line, nixfile.Indent+strings.TrimSpace(entry.Comment))
					report.Deleted = append(report.Deleted, name)
				default:
					deadpool = append(deadpool, entry.Line)
					report.Deleted = append(report.Deleted, name)
				}
				if !opts.AllInstances {
					break
				}
			}
		}

		// Disabled entries can only ever be deleted, never disabled again.
		if (opts.Scope == ScopeDisabled || opts.Scope == ScopeAll) && opts.Delete {
			for _, entry := range doc.Disabled {
				if entry.Name != name {
					continue
				}
				if entry.Comment != "" {
					buf.SetLine(entry.Line, nixfile.Indent+strings.TrimSpace(entry.Comment))
				} else {
					deadpool = append(deadpool, entry.Line)
				}
				report.Deleted = append(report.Deleted, name)
				if !opts.AllInstances {
					break
				}
			}
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(deadpool)))
	for _, line := range deadpool {
		buf.Delete(line)
	}

	if len(report.Disabled) == 0 && len(report.Deleted) == 0 {
		logger.Debug().Strs("names", names).Msg("Remove was a no-op")
		return report, nil
	}

	if err := e.store.Write(buf); err != nil {
		return nil, err
	}
	report.Changed = true

	logger.Info().
		Strs("disabled", report.Disabled).
		Strs("deleted", report.Deleted).
		Msg("Packages removed")

	return report, nil
}

// Clean deletes every disabled package line. It is a maintenance operation,
// so the internal re-parse runs with warnings suppressed.
func (e *Engine) Clean() (*RemoveReport, error) {
	buf, err := e.store.Read()
	if err != nil {
		return nil, err
	}
	doc, err := nixfile.Parse(buf, nixfile.ParseOptions{SuppressWarnings: true})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(doc.Disabled))
	for _, entry := range doc.Disabled {
		names = append(names, entry.Name)
	}

	return e.Remove(names, RemoveOptions{
		Scope:            ScopeDisabled,
		Delete:           true,
		AllInstances:     true,
		SuppressWarnings: true,
	})
}

// UpdateFingerprint recomputes the content fingerprint and reconciles the
// stored marker: rewritten in place (keeping its trailing comment) when
// present, inserted at the top of the file otherwise. Returns whether the
// marker changed (and the file was written).
func (e *Engine) UpdateFingerprint() (bool, error) {
	logger := logging.GetLogger("mutate")

	buf, err := e.store.Read()
	if err != nil {
		return false, err
	}
	doc, err := nixfile.Parse(buf, nixfile.ParseOptions{})
	if err != nil {
		return false, err
	}

	computed := fingerprint.Compute(doc)
	if doc.Fingerprint != nil && doc.Fingerprint.Hash == computed {
		return false, nil
	}

	if doc.Fingerprint != nil {
		buf.SetLine(doc.Fingerprint.Line, nixfile.FingerprintPrefix+" "+computed+doc.Fingerprint.Comment)
	} else {
		buf.Insert(0, nixfile.FingerprintPrefix+" "+computed)
	}

	if err := e.store.Write(buf); err != nil {
		return false, err
	}

	logger.Info().Str("fingerprint", computed).Msg("Fingerprint updated")
	return true, nil
}

// insertionPoint decides where Add places new lines: the insertion marker
// if present, else below the last package entry, else above the first
// closing-bracket code token, else end of file.
func insertionPoint(doc *nixfile.Document, buf *nixfile.Buffer) (above bool, line int) {
	if doc.Insertion != nil {
		return doc.Insertion.Above, doc.Insertion.Line
	}

	last := -1
	if n := len(doc.Active); n > 0 {
		last = doc.Active[n-1].Line
	}
	if n := len(doc.Disabled); n > 0 && doc.Disabled[n-1].Line > last {
		last = doc.Disabled[n-1].Line
	}
	if last >= 0 {
		return false, last
	}

	for _, c := range doc.Code {
		if strings.HasPrefix(c.Text, "]") {
			return true, c.Line
		}
	}

	return true, buf.Len()
}

// firstEntry returns the first entry with the given name, in file order
func firstEntry(entries []nixfile.Entry, name string) (nixfile.Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return nixfile.Entry{}, false
}

// dedupe removes duplicate names keeping first occurrence order
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
