// Package fingerprint computes the order-invariant content fingerprint of
// a parsed Document. The fingerprint covers active packages and code
// tokens only: disabled packages never participate. Reordering packages
// within one contiguous run leaves the digest unchanged; moving a package
// across a code token, or editing code token text, changes it.
package fingerprint

import (
	"sort"

	"github.com/arthur-debert/annix/pkg/internal/hashutil"
	"github.com/arthur-debert/annix/pkg/nixfile"
)

// Tokens builds the fingerprint token stream for a document.
//
// With no code tokens the stream is just the sorted active package names.
// With no active packages it is the code tokens in file order. Otherwise
// packages and code tokens are merged by line index and each maximal
// contiguous package run is flushed sorted; runs never merge across an
// intervening code token.
func Tokens(doc *nixfile.Document) []string {
	if len(doc.Code) == 0 {
		names := make([]string, 0, len(doc.Active))
		for _, e := range doc.Active {
			names = append(names, e.Name)
		}
		sort.Strings(names)
		return names
	}

	if len(doc.Active) == 0 {
		texts := make([]string, 0, len(doc.Code))
		for _, c := range doc.Code {
			texts = append(texts, c.Text)
		}
		return texts
	}

	type item struct {
		text   string
		line   int
		isCode bool
	}
	merged := make([]item, 0, len(doc.Active)+len(doc.Code))
	for _, e := range doc.Active {
		merged = append(merged, item{text: e.Name, line: e.Line})
	}
	for _, c := range doc.Code {
		merged = append(merged, item{text: c.Text, line: c.Line, isCode: true})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].line < merged[j].line })

	var tokens []string
	var run []string
	flush := func() {
		sort.Strings(run)
		tokens = append(tokens, run...)
		run = run[:0]
	}

	for _, it := range merged {
		if it.isCode {
			flush()
			tokens = append(tokens, it.text)
			continue
		}
		run = append(run, it.text)
	}
	flush()

	return tokens
}

// Compute returns the lowercase hex digest of the document's token stream.
// MD5 is fine here: this is a change detector, not a security boundary.
func Compute(doc *nixfile.Document) string {
	return hashutil.MD5Hex(Tokens(doc))
}

// NeedsRebuild reports whether the stored fingerprint marker differs from
// the computed digest. A missing or empty marker always needs a rebuild.
func NeedsRebuild(doc *nixfile.Document) bool {
	if doc.Fingerprint == nil {
		return true
	}
	return doc.Fingerprint.Hash != Compute(doc)
}
