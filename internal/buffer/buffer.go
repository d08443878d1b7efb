// Package buffer defines the read-only text buffer and cursor positions.
package buffer

import "strings"

// Position is a cursor location in a buffer. Line and Col are 0-indexed.
// Positions are plain values; motions return new ones instead of mutating.
type Position struct {
	Line int
	Col  int
}

// Buffer is an ordered sequence of text lines. It is supplied once at
// session start and never mutated by the engine.
type Buffer []string

// New builds a buffer from raw text, splitting on newlines. Empty input
// yields a single empty line so positions stay valid.
func New(text string) Buffer {
	return Buffer(strings.Split(text, "\n"))
}

// LineCount returns the number of lines, at least 1 for usable buffers.
func (b Buffer) LineCount() int {
	return len(b)
}

// Line returns the text of line i, or "" when i is out of range.
func (b Buffer) Line(i int) string {
	if i < 0 || i >= len(b) {
		return ""
	}
	return b[i]
}

// LineLen returns the rune length of line i.
func (b Buffer) LineLen(i int) int {
	return len([]rune(b.Line(i)))
}

// MaxCol returns the largest valid column on line i (0 for empty lines).
func (b Buffer) MaxCol(i int) int {
	n := b.LineLen(i)
	if n == 0 {
		return 0
	}
	return n - 1
}

// Clamp forces p inside the buffer: line into [0, lines-1], column into
// [0, MaxCol(line)]. Out-of-range navigation never fails, it just stops
// at the edge.
func (b Buffer) Clamp(p Position) Position {
	if len(b) == 0 {
		return Position{}
	}
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b) {
		p.Line = len(b) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if max := b.MaxCol(p.Line); p.Col > max {
		p.Col = max
	}
	return p
}

// CharAt returns the rune at p, or 0 when p addresses no character
// (empty line or out of range).
func (b Buffer) CharAt(p Position) rune {
	line := []rune(b.Line(p.Line))
	if p.Col < 0 || p.Col >= len(line) {
		return 0
	}
	return line[p.Col]
}

// FirstNonBlank returns the column of the first non-whitespace rune on
// line i, or 0 when the line is empty or all blank.
func (b Buffer) FirstNonBlank(i int) int {
	for col, r := range []rune(b.Line(i)) {
		if r != ' ' && r != '\t' {
			return col
		}
	}
	return 0
}

// IsBlankLine reports whether line i contains no non-whitespace runes.
func (b Buffer) IsBlankLine(i int) bool {
	return strings.TrimSpace(b.Line(i)) == ""
}
