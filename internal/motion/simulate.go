package motion

import "github.com/verte-zerg/vimnav/internal/buffer"

// Apply simulates a motion from p on buf and returns the resulting
// position. It never fails: motions that cannot move clamp to the buffer
// edges or leave the cursor in place. A count of n applies the motion n
// times sequentially, so column clamping between repetitions behaves the
// way it does in the emulated editor.
func Apply(p buffer.Position, m Motion, buf buffer.Buffer) buffer.Position {
	p = buf.Clamp(p)
	for i := 0; i < m.repeats(); i++ {
		p = applyOnce(p, m, buf)
	}
	return p
}

func applyOnce(p buffer.Position, m Motion, buf buffer.Buffer) buffer.Position {
	switch m.Kind {
	case Left:
		return buf.Clamp(buffer.Position{Line: p.Line, Col: p.Col - 1})
	case Right:
		return buf.Clamp(buffer.Position{Line: p.Line, Col: p.Col + 1})
	case Up:
		return buf.Clamp(buffer.Position{Line: p.Line - 1, Col: p.Col})
	case Down:
		return buf.Clamp(buffer.Position{Line: p.Line + 1, Col: p.Col})
	case WordForward:
		return wordForward(buf, p, false)
	case WORDForward:
		return wordForward(buf, p, true)
	case WordBackward:
		return wordBackward(buf, p, false)
	case WORDBackward:
		return wordBackward(buf, p, true)
	case WordEnd:
		return wordEnd(buf, p, false)
	case WORDEnd:
		return wordEnd(buf, p, true)
	case WordEndBackward:
		return wordEndBackward(buf, p)
	case LineStart:
		return buffer.Position{Line: p.Line, Col: 0}
	case LineFirstNonBlank:
		return buffer.Position{Line: p.Line, Col: buf.FirstNonBlank(p.Line)}
	case LineEnd:
		return buffer.Position{Line: p.Line, Col: buf.MaxCol(p.Line)}
	case NextLineFirstNonBlank:
		if p.Line+1 >= buf.LineCount() {
			return p
		}
		return buffer.Position{Line: p.Line + 1, Col: buf.FirstNonBlank(p.Line + 1)}
	case PrevLineFirstNonBlank:
		if p.Line == 0 {
			return p
		}
		return buffer.Position{Line: p.Line - 1, Col: buf.FirstNonBlank(p.Line - 1)}
	case ParagraphForward:
		return paragraphForward(buf, p)
	case ParagraphBackward:
		return paragraphBackward(buf, p)
	case DocumentStart:
		return buffer.Position{}
	case DocumentEnd:
		return buffer.Position{Line: buf.LineCount() - 1, Col: 0}
	case GoToLine:
		return buf.Clamp(buffer.Position{Line: m.Line - 1, Col: 0})
	case FindCharForward:
		return findChar(buf, p, m.Char, true, 0)
	case FindCharBackward:
		return findChar(buf, p, m.Char, false, 0)
	case TillCharForward:
		return findChar(buf, p, m.Char, true, -1)
	case TillCharBackward:
		return findChar(buf, p, m.Char, false, 1)
	case MatchingBracket:
		return matchingBracket(buf, p)
	}
	return p
}

type charClass int

const (
	classSpace charClass = iota
	classWord
	classPunct
)

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == 0
}

// classify buckets a rune under the word definition (alphanumeric plus
// underscore) or, when useWORD is set, the coarser non-whitespace one.
func classify(r rune, useWORD bool) charClass {
	switch {
	case isSpaceRune(r):
		return classSpace
	case useWORD || isWordRune(r):
		return classWord
	default:
		return classPunct
	}
}

func wordForward(buf buffer.Buffer, p buffer.Position, useWORD bool) buffer.Position {
	line := []rune(buf.Line(p.Line))
	col := p.Col
	for col < len(line) && classify(line[col], useWORD) == classWord {
		col++
	}
	for col < len(line) && classify(line[col], useWORD) == classPunct {
		col++
	}
	for col < len(line) && classify(line[col], useWORD) == classSpace {
		col++
	}
	if col < len(line) {
		return buffer.Position{Line: p.Line, Col: col}
	}
	if p.Line+1 < buf.LineCount() {
		next := p.Line + 1
		return buffer.Position{Line: next, Col: buf.FirstNonBlank(next)}
	}
	return buf.Clamp(buffer.Position{Line: p.Line, Col: col})
}

func wordBackward(buf buffer.Buffer, p buffer.Position, useWORD bool) buffer.Position {
	cur, ok := prevCell(buf, p)
	if !ok {
		return buf.Clamp(p)
	}
	for ok && classify(buf.CharAt(cur), useWORD) == classSpace {
		cur, ok = prevCell(buf, cur)
	}
	if !ok {
		return buffer.Position{}
	}
	cur = runStartOnLine(buf, cur, useWORD)
	// Mirror of the forward traversal: a punctuation run attaches to the
	// word run immediately before it on the same line.
	if classify(buf.CharAt(cur), useWORD) == classPunct && cur.Col > 0 {
		before := buffer.Position{Line: cur.Line, Col: cur.Col - 1}
		if classify(buf.CharAt(before), useWORD) == classWord {
			cur = runStartOnLine(buf, before, useWORD)
		}
	}
	return cur
}

// runStartOnLine walks to the first column of the character run containing
// p, staying on p's line.
func runStartOnLine(buf buffer.Buffer, p buffer.Position, useWORD bool) buffer.Position {
	c := classify(buf.CharAt(p), useWORD)
	for p.Col > 0 {
		before := buffer.Position{Line: p.Line, Col: p.Col - 1}
		if classify(buf.CharAt(before), useWORD) != c {
			break
		}
		p = before
	}
	return p
}

func wordEnd(buf buffer.Buffer, p buffer.Position, useWORD bool) buffer.Position {
	cur, ok := nextCell(buf, p)
	if !ok {
		return buf.Clamp(p)
	}
	for ok && classify(buf.CharAt(cur), useWORD) == classSpace {
		cur, ok = nextCell(buf, cur)
	}
	if !ok {
		return buf.Clamp(buffer.Position{Line: buf.LineCount() - 1, Col: buf.MaxCol(buf.LineCount() - 1)})
	}
	c := classify(buf.CharAt(cur), useWORD)
	for {
		next := buffer.Position{Line: cur.Line, Col: cur.Col + 1}
		if next.Col >= buf.LineLen(cur.Line) || classify(buf.CharAt(next), useWORD) != c {
			break
		}
		cur = next
	}
	return cur
}

func wordEndBackward(buf buffer.Buffer, p buffer.Position) buffer.Position {
	cur, ok := prevCell(buf, p)
	if !ok {
		return buf.Clamp(p)
	}
	for ok && classify(buf.CharAt(cur), false) == classSpace {
		cur, ok = prevCell(buf, cur)
	}
	if !ok {
		return buffer.Position{}
	}
	return cur
}

// nextCell steps one addressable cell forward, crossing line ends. An
// empty line counts as a single blank cell at column 0.
func nextCell(buf buffer.Buffer, p buffer.Position) (buffer.Position, bool) {
	if p.Col+1 < buf.LineLen(p.Line) {
		return buffer.Position{Line: p.Line, Col: p.Col + 1}, true
	}
	if p.Line+1 < buf.LineCount() {
		return buffer.Position{Line: p.Line + 1, Col: 0}, true
	}
	return p, false
}

// prevCell mirrors nextCell.
func prevCell(buf buffer.Buffer, p buffer.Position) (buffer.Position, bool) {
	if p.Col > 0 {
		return buffer.Position{Line: p.Line, Col: p.Col - 1}, true
	}
	if p.Line > 0 {
		prev := p.Line - 1
		return buffer.Position{Line: prev, Col: buf.MaxCol(prev)}, true
	}
	return p, false
}

func paragraphForward(buf buffer.Buffer, p buffer.Position) buffer.Position {
	line := p.Line + 1
	for line < buf.LineCount()-1 && !buf.IsBlankLine(line) {
		line++
	}
	if line >= buf.LineCount() {
		line = buf.LineCount() - 1
	}
	return buffer.Position{Line: line, Col: 0}
}

func paragraphBackward(buf buffer.Buffer, p buffer.Position) buffer.Position {
	line := p.Line - 1
	for line > 0 && !buf.IsBlankLine(line) {
		line--
	}
	if line < 0 {
		line = 0
	}
	return buffer.Position{Line: line, Col: 0}
}

// findChar searches the current line for c strictly after (forward) or
// before (backward) the cursor column. offset shifts the landing column
// for till motions. The position is unchanged when c is absent.
func findChar(buf buffer.Buffer, p buffer.Position, c rune, forward bool, offset int) buffer.Position {
	line := []rune(buf.Line(p.Line))
	if forward {
		for col := p.Col + 1; col < len(line); col++ {
			if line[col] == c {
				return buf.Clamp(buffer.Position{Line: p.Line, Col: col + offset})
			}
		}
		return p
	}
	for col := p.Col - 1; col >= 0; col-- {
		if line[col] == c {
			return buf.Clamp(buffer.Position{Line: p.Line, Col: col + offset})
		}
	}
	return p
}

var bracketPairs = map[rune]struct {
	match   rune
	forward bool
}{
	'(': {')', true},
	'[': {']', true},
	'{': {'}', true},
	')': {'(', false},
	']': {'[', false},
	'}': {'{', false},
}

// matchingBracket performs a depth-counted scan across lines for the
// bracket matching the one under the cursor. No-op when the cursor is not
// on a bracket or no match exists.
func matchingBracket(buf buffer.Buffer, p buffer.Position) buffer.Position {
	open := buf.CharAt(p)
	pair, ok := bracketPairs[open]
	if !ok {
		return p
	}
	depth := 1
	cur := p
	step := prevCell
	if pair.forward {
		step = nextCell
	}
	for {
		next, more := step(buf, cur)
		if !more {
			return p
		}
		cur = next
		switch buf.CharAt(cur) {
		case open:
			depth++
		case pair.match:
			depth--
			if depth == 0 {
				return cur
			}
		}
	}
}
