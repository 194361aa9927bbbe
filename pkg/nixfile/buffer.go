package nixfile

import (
	"strings"
)

// Buffer is the raw line buffer: an ordered, 0-indexed sequence of lines
// without terminators. Inserting or deleting lines shifts later indices,
// so batched deletions must be applied in descending index order.
type Buffer struct {
	lines []string

	// noEOFNewline is set when the source bytes did not end with a
	// newline, so a rewrite stays byte-identical for untouched files.
	noEOFNewline bool
}

// NewBuffer creates a buffer from pre-split lines (no terminators)
func NewBuffer(lines []string) *Buffer {
	return &Buffer{lines: append([]string(nil), lines...)}
}

// FromBytes splits raw file content into a buffer, remembering whether
// the content ended with a newline.
func FromBytes(data []byte) *Buffer {
	if len(data) == 0 {
		return &Buffer{}
	}
	s := string(data)
	noEOF := !strings.HasSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\n")
	return &Buffer{lines: strings.Split(s, "\n"), noEOFNewline: noEOF}
}

// Len returns the number of lines
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Line returns the line at index i
func (b *Buffer) Line(i int) string {
	return b.lines[i]
}

// Lines returns a copy of all lines
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// SetLine rewrites the line at index i in place
func (b *Buffer) SetLine(i int, line string) {
	b.lines[i] = line
}

// Insert places a new line at index i, shifting later lines down
func (b *Buffer) Insert(i int, line string) {
	b.lines = append(b.lines, "")
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = line
}

// Delete removes the line at index i, shifting later lines up
func (b *Buffer) Delete(i int) {
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
}

// Append adds a line at the end of the buffer
func (b *Buffer) Append(line string) {
	b.lines = append(b.lines, line)
}

// Bytes renders the buffer back to file content
func (b *Buffer) Bytes() []byte {
	if len(b.lines) == 0 {
		return nil
	}
	s := strings.Join(b.lines, "\n")
	if !b.noEOFNewline {
		s += "\n"
	}
	return []byte(s)
}
