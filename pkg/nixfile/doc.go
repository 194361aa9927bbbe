// Package nixfile implements the line-oriented model of an annix-managed
// Nix file. It classifies raw lines against the annix marker grammar,
// parses a whole file into a Document, and owns the raw line buffer that
// every mutation operates on.
//
// The grammar is deliberately restrictive: one package declaration per
// line, no multi-line comments or strings. Line indices into the buffer
// are the sole identity for parsed entities; a Document is only valid for
// the buffer it was parsed from, and must be re-derived after mutations.
package nixfile
