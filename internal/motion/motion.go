// Package motion defines the navigation command vocabulary and the
// simulator that applies commands to cursor positions.
package motion

import "strconv"

// Kind identifies a single navigation command.
type Kind int

const (
	Left Kind = iota
	Down
	Up
	Right
	WordForward
	WordBackward
	WordEnd
	WORDForward
	WORDBackward
	WORDEnd
	WordEndBackward
	LineStart
	LineFirstNonBlank
	LineEnd
	NextLineFirstNonBlank
	PrevLineFirstNonBlank
	ParagraphForward
	ParagraphBackward
	DocumentStart
	DocumentEnd
	GoToLine
	FindCharForward
	FindCharBackward
	TillCharForward
	TillCharBackward
	MatchingBracket
)

// Motion is a navigation command with its arguments. Count below 2 means
// a single application. Char is set for find/till motions, Line (1-indexed)
// for GoToLine.
type Motion struct {
	Kind  Kind
	Count int
	Char  rune
	Line  int
}

// baseKeys maps argument-free kinds to their keystroke representation.
var baseKeys = map[Kind]string{
	Left:                  "h",
	Down:                  "j",
	Up:                    "k",
	Right:                 "l",
	WordForward:           "w",
	WordBackward:          "b",
	WordEnd:               "e",
	WORDForward:           "W",
	WORDBackward:          "B",
	WORDEnd:               "E",
	WordEndBackward:       "ge",
	LineStart:             "0",
	LineFirstNonBlank:     "^",
	LineEnd:               "$",
	NextLineFirstNonBlank: "+",
	PrevLineFirstNonBlank: "-",
	ParagraphForward:      "}",
	ParagraphBackward:     "{",
	DocumentStart:         "gg",
	DocumentEnd:           "G",
	MatchingBracket:       "%",
}

// Keys returns the keystrokes a user types to issue the motion,
// including the count prefix when Count is 2 or more.
func (m Motion) Keys() string {
	prefix := ""
	if m.Count >= 2 {
		prefix = strconv.Itoa(m.Count)
	}
	switch m.Kind {
	case GoToLine:
		return strconv.Itoa(m.Line) + "G"
	case FindCharForward:
		return prefix + "f" + string(m.Char)
	case FindCharBackward:
		return prefix + "F" + string(m.Char)
	case TillCharForward:
		return prefix + "t" + string(m.Char)
	case TillCharBackward:
		return prefix + "T" + string(m.Char)
	}
	return prefix + baseKeys[m.Kind]
}

// Cost returns the number of keystrokes needed to issue the motion.
func (m Motion) Cost() int {
	return len([]rune(m.Keys()))
}

// repeats returns the effective repeat count.
func (m Motion) repeats() int {
	if m.Count < 2 {
		return 1
	}
	return m.Count
}
