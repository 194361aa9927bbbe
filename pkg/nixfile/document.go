package nixfile

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/arthur-debert/annix/pkg/logging"
)

// WarningCode identifies a non-fatal parse finding
type WarningCode string

const (
	WarnInvalidFingerprint   WarningCode = "INVALID_FINGERPRINT"
	WarnDuplicateFingerprint WarningCode = "DUPLICATE_FINGERPRINT"
	WarnDuplicateInsertion   WarningCode = "DUPLICATE_INSERTION"
	WarnDuplicatePackages    WarningCode = "DUPLICATE_PACKAGES"
)

// Warning is a collected, non-fatal parse finding. Line is 1-based, or 0
// when the warning is not tied to a single line.
type Warning struct {
	Code    WarningCode
	Message string
	Line    int
	Raw     string
}

// Entry is a package declaration referencing its buffer line
type Entry struct {
	Name    string `json:"name"`
	Line    int    `json:"line"`
	Comment string `json:"comment,omitempty"`
}

// CodeToken is a line of normalized Nix code participating in the fingerprint
type CodeToken struct {
	Text string
	Line int
}

// FingerprintMarker is the stored content fingerprint line
type FingerprintMarker struct {
	Hash    string
	Line    int
	Comment string
}

// InsertionMarker is the explicit add-here line
type InsertionMarker struct {
	Above bool
	Line  int
}

// Document is the structured view of one parse of a Buffer. It is rebuilt
// from scratch on every parse and never mutated in place; every line index
// it holds is only valid against the buffer it was parsed from.
type Document struct {
	Fingerprint *FingerprintMarker
	Insertion   *InsertionMarker
	Active      []Entry
	Disabled    []Entry
	Code        []CodeToken
	Warnings    []Warning
}

// ParseOptions controls parse behavior
type ParseOptions struct {
	// SuppressWarnings drops warnings instead of collecting and logging
	// them. Used for best-effort internal re-parses (e.g. clean).
	SuppressWarnings bool
}

// Parse classifies every buffer line and builds the Document. Fatal grammar
// violations abort immediately with the 1-based line number and raw text
// attached to the error.
func Parse(buf *Buffer, opts ParseOptions) (*Document, error) {
	logger := logging.GetLogger("nixfile")
	doc := &Document{}

	warn := func(code WarningCode, message string, line int, raw string) {
		if opts.SuppressWarnings {
			return
		}
		doc.Warnings = append(doc.Warnings, Warning{Code: code, Message: message, Line: line, Raw: raw})
		logger.Warn().Str("code", string(code)).Int("line", line).Msg(message)
	}

	for i := 0; i < buf.Len(); i++ {
		raw := buf.Line(i)
		ln, err := Classify(raw)
		if err != nil {
			var annixErr *errors.AnnixError
			if stderrors.As(err, &annixErr) {
				return nil, annixErr.WithLine(i+1, raw)
			}
			return nil, err
		}

		switch ln.Kind {
		case KindBlank, KindComment:
			continue

		case KindInvalidFingerprint:
			warn(WarnInvalidFingerprint, "invalid fingerprint hash", i+1, raw)

		case KindFingerprint:
			if doc.Fingerprint != nil {
				warn(WarnDuplicateFingerprint, fmt.Sprintf("multiple fingerprint markers (%s) found", FingerprintPrefix), i+1, raw)
				continue
			}
			doc.Fingerprint = &FingerprintMarker{Hash: ln.Hash, Line: i, Comment: ln.Comment}

		case KindInsertion:
			if doc.Insertion != nil {
				warn(WarnDuplicateInsertion, fmt.Sprintf("multiple insertion markers (%s / %s) found", InsertBelowMarker, InsertAboveMarker), i+1, raw)
				continue
			}
			doc.Insertion = &InsertionMarker{Above: ln.Above, Line: i}

		case KindPackage:
			doc.Active = append(doc.Active, Entry{Name: ln.Name, Line: i, Comment: ln.Comment})

		case KindDisabled:
			doc.Disabled = append(doc.Disabled, Entry{Name: ln.Name, Line: i, Comment: ln.Comment})

		case KindCode:
			doc.Code = append(doc.Code, CodeToken{Text: ln.Code, Line: i})
		}
	}

	if dups := duplicateNames(doc.Active, doc.Disabled); len(dups) > 0 {
		warn(WarnDuplicatePackages, fmt.Sprintf("duplicate packages found: [%s]", strings.Join(dups, ", ")), 0, "")
	}

	return doc, nil
}

// ActiveNames returns the set of active package names
func (d *Document) ActiveNames() map[string]bool {
	names := make(map[string]bool, len(d.Active))
	for _, e := range d.Active {
		names[e.Name] = true
	}
	return names
}

// duplicateNames returns the sorted names appearing more than once across
// the active and disabled lists.
func duplicateNames(lists ...[]Entry) []string {
	seen := make(map[string]bool)
	dups := make(map[string]bool)
	for _, list := range lists {
		for _, e := range list {
			if seen[e.Name] {
				dups[e.Name] = true
			}
			seen[e.Name] = true
		}
	}
	out := make([]string, 0, len(dups))
	for name := range dups {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
