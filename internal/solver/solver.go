// Package solver computes the cheapest motion sequences between two
// buffer positions.
package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verte-zerg/vimnav/internal/buffer"
	"github.com/verte-zerg/vimnav/internal/motion"
)

// MaxWalkSteps bounds the simulated walks used to verify word, WORD and
// paragraph candidates. It is the only place the finder iterates instead
// of reasoning in closed form, so it also bounds worst-case latency.
const MaxWalkSteps = 20

// Category tags the motion family a solution belongs to.
type Category string

const (
	CategoryBasic     Category = "basic"
	CategoryWord      Category = "word"
	CategoryLine      Category = "line"
	CategoryFind      Category = "find"
	CategoryParagraph Category = "paragraph"
	CategoryDocument  Category = "document"
	CategoryBracket   Category = "bracket"
	CategoryCount     Category = "count"
)

// Solution is an ordered motion sequence that moves the cursor from one
// position to another, tagged with its category and a description.
type Solution struct {
	Motions     []motion.Motion
	Category    Category
	Description string
}

// Keys returns the full keystroke string for the solution.
func (s Solution) Keys() string {
	var b strings.Builder
	for _, m := range s.Motions {
		b.WriteString(m.Keys())
	}
	return b.String()
}

// Cost returns the total number of keystrokes needed to type the solution.
func (s Solution) Cost() int {
	total := 0
	for _, m := range s.Motions {
		total += m.Cost()
	}
	return total
}

// applies runs the solution's motions from p and returns the final position.
func (s Solution) applies(p buffer.Position, buf buffer.Buffer) buffer.Position {
	for _, m := range s.Motions {
		p = motion.Apply(p, m, buf)
	}
	return p
}

// Solve enumerates every motion category that reaches to from from and
// returns the candidates sorted by ascending keystroke cost. Ties keep
// discovery order. The result is never empty: a basic decomposition is
// always present as a guaranteed fallback.
func Solve(from, to buffer.Position, buf buffer.Buffer) []Solution {
	from = buf.Clamp(from)
	to = buf.Clamp(to)
	if from == to {
		return []Solution{{Category: CategoryBasic, Description: "already there"}}
	}

	var candidates []Solution
	add := func(s Solution) {
		if s.applies(from, buf) == to {
			candidates = append(candidates, s)
		}
	}

	// Discovery order is the tie-break: on equal cost the earlier
	// candidate wins, so the most direct interpretations come first.
	if s, ok := bracketCandidate(from, to, buf); ok {
		add(s)
	}
	if from.Line == to.Line {
		for _, s := range sameLineCandidates(from, to, buf) {
			add(s)
		}
	} else {
		add(basicDecomposition(from, to, buf))
	}
	for _, s := range relativeLineCandidates(from, to, buf) {
		add(s)
	}
	for _, s := range documentCandidates(from, to, buf) {
		add(s)
	}
	for _, s := range wordCandidates(from, to, buf) {
		add(s)
	}
	for _, s := range paragraphCandidates(from, to, buf) {
		add(s)
	}

	if len(candidates) == 0 {
		// The decomposition is exact by construction, so this only
		// happens when the add verification was skipped above.
		candidates = append(candidates, basicDecomposition(from, to, buf))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Cost() < candidates[j].Cost()
	})
	return candidates
}

func lineDelta(from, to buffer.Position) int {
	return to.Line - from.Line
}

func counted(kind motion.Kind, n int) motion.Motion {
	return motion.Motion{Kind: kind, Count: n}
}

// horizontalMotion builds the h/l correction for a same-line offset.
func horizontalMotion(dx int) motion.Motion {
	if dx > 0 {
		return counted(motion.Right, dx)
	}
	return counted(motion.Left, -dx)
}

func verticalMotion(dy int) motion.Motion {
	if dy > 0 {
		return counted(motion.Down, dy)
	}
	return counted(motion.Up, -dy)
}

// basicCategory distinguishes plain single-step solutions from ones that
// need a count prefix.
func basicCategory(motions []motion.Motion) Category {
	for _, m := range motions {
		if m.Count >= 2 {
			return CategoryCount
		}
	}
	return CategoryBasic
}

func sameLineCandidates(from, to buffer.Position, buf buffer.Buffer) []Solution {
	dx := to.Col - from.Col
	if dx == 0 {
		return nil
	}
	var out []Solution

	h := horizontalMotion(dx)
	out = append(out, Solution{
		Motions:     []motion.Motion{h},
		Category:    basicCategory([]motion.Motion{h}),
		Description: describeHorizontal(dx),
	})

	line := to.Line
	if to.Col == 0 {
		out = append(out, Solution{
			Motions:     []motion.Motion{{Kind: motion.LineStart}},
			Category:    CategoryLine,
			Description: "jump to line start",
		})
	}
	if to.Col == buf.FirstNonBlank(line) && to.Col != 0 {
		out = append(out, Solution{
			Motions:     []motion.Motion{{Kind: motion.LineFirstNonBlank}},
			Category:    CategoryLine,
			Description: "jump to first non-blank",
		})
	}
	if to.Col == buf.MaxCol(line) {
		out = append(out, Solution{
			Motions:     []motion.Motion{{Kind: motion.LineEnd}},
			Category:    CategoryLine,
			Description: "jump to line end",
		})
	}

	out = append(out, findCandidates(from, to, buf)...)
	return out
}

// findCandidates proposes f/F/t/T motions on the current line. Each is
// verified by the caller, so overshooting earlier occurrences of the
// literal character disqualify themselves.
func findCandidates(from, to buffer.Position, buf buffer.Buffer) []Solution {
	var out []Solution
	forward := to.Col > from.Col

	if c := buf.CharAt(to); c != 0 && c != ' ' && c != '\t' {
		kind := motion.FindCharBackward
		if forward {
			kind = motion.FindCharForward
		}
		out = append(out, Solution{
			Motions:     []motion.Motion{{Kind: kind, Char: c}},
			Category:    CategoryFind,
			Description: fmt.Sprintf("find %q", c),
		})
	}

	// Till motions key off the character just beyond the target.
	tillCol := to.Col + 1
	kind := motion.TillCharForward
	if !forward {
		tillCol = to.Col - 1
		kind = motion.TillCharBackward
	}
	if c := buf.CharAt(buffer.Position{Line: to.Line, Col: tillCol}); c != 0 && c != ' ' && c != '\t' {
		out = append(out, Solution{
			Motions:     []motion.Motion{{Kind: kind, Char: c}},
			Category:    CategoryFind,
			Description: fmt.Sprintf("move till %q", c),
		})
	}
	return out
}

var walkKinds = []struct {
	kind motion.Kind
	desc string
}{
	{motion.WordForward, "word forward"},
	{motion.WordBackward, "word backward"},
	{motion.WordEnd, "word end"},
	{motion.WORDForward, "WORD forward"},
	{motion.WORDBackward, "WORD backward"},
	{motion.WORDEnd, "WORD end"},
	{motion.WordEndBackward, "word end backward"},
}

// wordCandidates verifies word-family motions by bounded simulated walks:
// if k repeated applications land exactly on the target, the motion is
// emitted with count k. A walk that overshoots or stalls contributes
// nothing.
func wordCandidates(from, to buffer.Position, buf buffer.Buffer) []Solution {
	var out []Solution
	for _, wk := range walkKinds {
		if k, ok := walkReaches(from, to, buf, wk.kind); ok {
			out = append(out, Solution{
				Motions:     []motion.Motion{counted(wk.kind, k)},
				Category:    CategoryWord,
				Description: describeRepeated(wk.desc, k),
			})
		}
	}
	return out
}

func walkReaches(from, to buffer.Position, buf buffer.Buffer, kind motion.Kind) (int, bool) {
	cur := from
	for k := 1; k <= MaxWalkSteps; k++ {
		next := motion.Apply(cur, motion.Motion{Kind: kind}, buf)
		if next == cur {
			return 0, false
		}
		if next == to {
			return k, true
		}
		cur = next
	}
	return 0, false
}

// basicDecomposition builds the guaranteed fallback: vertical motion, then
// a horizontal correction computed against the column the cursor actually
// has after the vertical move (line-length clamping included).
func basicDecomposition(from, to buffer.Position, buf buffer.Buffer) Solution {
	var motions []motion.Motion
	cur := from
	if dy := lineDelta(from, to); dy != 0 {
		v := verticalMotion(dy)
		motions = append(motions, v)
		cur = motion.Apply(cur, v, buf)
	}
	if dx := to.Col - cur.Col; dx != 0 {
		motions = append(motions, horizontalMotion(dx))
	}
	return Solution{
		Motions:     motions,
		Category:    basicCategory(motions),
		Description: "line then column",
	}
}

// relativeLineCandidates offers +/- only for small deltas onto the
// destination line's first non-blank column.
func relativeLineCandidates(from, to buffer.Position, buf buffer.Buffer) []Solution {
	dy := lineDelta(from, to)
	if dy == 0 || dy > 3 || dy < -3 {
		return nil
	}
	if to.Col != buf.FirstNonBlank(to.Line) {
		return nil
	}
	kind := motion.NextLineFirstNonBlank
	desc := "next line, first non-blank"
	n := dy
	if dy < 0 {
		kind = motion.PrevLineFirstNonBlank
		desc = "previous line, first non-blank"
		n = -dy
	}
	return []Solution{{
		Motions:     []motion.Motion{counted(kind, n)},
		Category:    CategoryLine,
		Description: describeRepeated(desc, n),
	}}
}

// documentCandidates offers gg/G/<n>G. These land at column 0, so any
// other target column disqualifies them (the caller's verification drops
// a first-non-blank target that is not column 0).
func documentCandidates(from, to buffer.Position, buf buffer.Buffer) []Solution {
	if to.Col != 0 && to.Col != buf.FirstNonBlank(to.Line) {
		return nil
	}
	var out []Solution
	if to.Line == 0 {
		out = append(out, Solution{
			Motions:     []motion.Motion{{Kind: motion.DocumentStart}},
			Category:    CategoryDocument,
			Description: "document start",
		})
	}
	if to.Line == buf.LineCount()-1 {
		out = append(out, Solution{
			Motions:     []motion.Motion{{Kind: motion.DocumentEnd}},
			Category:    CategoryDocument,
			Description: "document end",
		})
	}
	if to.Line != 0 && to.Line != buf.LineCount()-1 {
		out = append(out, Solution{
			Motions:     []motion.Motion{{Kind: motion.GoToLine, Line: to.Line + 1}},
			Category:    CategoryDocument,
			Description: fmt.Sprintf("go to line %d", to.Line+1),
		})
	}
	return out
}

// paragraphCandidates applies only to jumps of more than two lines and is
// verified by the same bounded walk as word motions.
func paragraphCandidates(from, to buffer.Position, buf buffer.Buffer) []Solution {
	dy := lineDelta(from, to)
	if dy <= 2 && dy >= -2 {
		return nil
	}
	kind := motion.ParagraphForward
	desc := "paragraph forward"
	if dy < 0 {
		kind = motion.ParagraphBackward
		desc = "paragraph backward"
	}
	if k, ok := walkReaches(from, to, buf, kind); ok {
		return []Solution{{
			Motions:     []motion.Motion{counted(kind, k)},
			Category:    CategoryParagraph,
			Description: describeRepeated(desc, k),
		}}
	}
	return nil
}

var bracketComplement = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
}

// bracketCandidate offers % when the characters at both ends form a
// complementary bracket pair.
func bracketCandidate(from, to buffer.Position, buf buffer.Buffer) (Solution, bool) {
	want, ok := bracketComplement[buf.CharAt(from)]
	if !ok || buf.CharAt(to) != want {
		return Solution{}, false
	}
	return Solution{
		Motions:     []motion.Motion{{Kind: motion.MatchingBracket}},
		Category:    CategoryBracket,
		Description: "matching bracket",
	}, true
}

func describeHorizontal(dx int) string {
	if dx > 0 {
		return describeRepeated("right", dx)
	}
	return describeRepeated("left", -dx)
}

func describeRepeated(desc string, n int) string {
	if n <= 1 {
		return desc
	}
	return fmt.Sprintf("%s ×%d", desc, n)
}
