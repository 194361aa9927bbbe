package nixfile

import (
	"strings"

	"github.com/arthur-debert/annix/pkg/errors"
)

// Marker grammar. These are bit-exact: the whole line model hangs off them.
const (
	// CommentPrefix starts an ignored comment line
	CommentPrefix = "#"

	// CodeSuffix tags a line as semantically significant Nix code
	CodeSuffix = "#@"

	// FingerprintPrefix precedes the stored content fingerprint
	FingerprintPrefix = "#@#"

	// InsertBelowMarker marks where added packages go (below the marker)
	InsertBelowMarker = "#@+"

	// InsertAboveMarker is the variant inserting above the marker
	InsertAboveMarker = "#@+^"

	// DisabledPrefix comments out a package while keeping it parseable
	DisabledPrefix = "#-"

	// Indent is the indentation used for lines annix writes
	Indent = "  "
)

// Kind identifies what a raw line is
type Kind int

const (
	KindBlank Kind = iota
	KindComment
	KindCode
	KindFingerprint
	KindInvalidFingerprint
	KindInsertion
	KindDisabled
	KindPackage
)

// Line is the result of classifying one raw line
type Line struct {
	Kind Kind

	// Name is the package name for KindPackage and KindDisabled
	Name string

	// Comment is the trailing same-line comment, verbatim including its
	// leading whitespace, for package lines and the fingerprint marker
	Comment string

	// Code is the whitespace-normalized text for KindCode
	Code string

	// Hash is the hex token for KindFingerprint
	Hash string

	// Above is the insertion orientation for KindInsertion
	Above bool
}

// Classify turns one raw line (terminator already stripped) into a typed
// Line. Fatal grammar violations are returned as errors without line
// context; the parser attaches the line number.
func Classify(raw string) (Line, error) {
	ln := strings.TrimSpace(raw)
	if ln == "" {
		return Line{Kind: KindBlank}, nil
	}

	// The line model cannot represent content spanning multiple lines.
	if strings.Contains(ln, "/*") || strings.Contains(ln, "*/") {
		return Line{}, errors.New(errors.ErrParseMultilineComment, "multi-line comments are not supported")
	}
	if strings.Contains(ln, "''") {
		return Line{}, errors.New(errors.ErrParseMultilineString, "multi-line strings are not supported")
	}

	if strings.HasSuffix(ln, CodeSuffix) {
		code := strings.TrimSpace(strings.TrimSuffix(ln, CodeSuffix))
		return Line{Kind: KindCode, Code: strings.Join(strings.Fields(code), " ")}, nil
	}

	if strings.HasPrefix(ln, FingerprintPrefix) {
		if rest := ln[len(FingerprintPrefix):]; strings.TrimSpace(rest) != "" {
			hash := strings.Fields(rest)[0]
			tail := rest[strings.Index(rest, hash)+len(hash):]
			if !isHex(hash) {
				return Line{Kind: KindInvalidFingerprint}, nil
			}
			return Line{Kind: KindFingerprint, Hash: hash, Comment: tail}, nil
		}
		// A bare prefix with no token is just a comment.
	}

	if ln == InsertBelowMarker {
		return Line{Kind: KindInsertion}, nil
	}
	if ln == InsertAboveMarker {
		return Line{Kind: KindInsertion, Above: true}, nil
	}

	if strings.HasPrefix(ln, DisabledPrefix) {
		if rest := strings.TrimSpace(ln[len(DisabledPrefix):]); rest != "" {
			name, comment, err := parsePackageLine(rest)
			if err != nil {
				return Line{}, err
			}
			return Line{Kind: KindDisabled, Name: name, Comment: comment}, nil
		}
	}

	if strings.HasPrefix(ln, CommentPrefix) {
		return Line{Kind: KindComment}, nil
	}

	name, comment, err := parsePackageLine(ln)
	if err != nil {
		return Line{}, err
	}
	return Line{Kind: KindPackage, Name: name, Comment: comment}, nil
}

// parsePackageLine splits a trimmed package declaration into its name and
// verbatim trailing comment. Anything after the name that is not a comment
// means more than one package on the line, which the format forbids.
func parsePackageLine(stripped string) (name, comment string, err error) {
	name = strings.Fields(stripped)[0]
	tail := strings.TrimPrefix(stripped, name)
	switch {
	case strings.TrimSpace(tail) == "":
		return name, "", nil
	case strings.HasPrefix(strings.TrimLeft(tail, " \t"), CommentPrefix):
		return name, tail, nil
	default:
		return "", "", errors.New(errors.ErrParseMultiplePackages, "multiple packages on one line are not supported")
	}
}

// isHex reports whether s is a non-empty base-16 token
func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
