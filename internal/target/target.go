// Package target selects practice positions in a buffer and attaches
// their precomputed optimal solutions.
package target

import (
	"math/rand"
	"sort"
	"time"

	"github.com/verte-zerg/vimnav/internal/analyzer"
	"github.com/verte-zerg/vimnav/internal/buffer"
	"github.com/verte-zerg/vimnav/internal/solver"
)

// Target is a practice destination. The optimal solution is computed once
// at generation time; the analysis is attached once on arrival.
type Target struct {
	Pos       buffer.Position
	Optimal   solver.Solution
	Completed bool
	Analysis  *analyzer.TargetAnalysis
}

// Complete attaches the arrival analysis. Subsequent calls are ignored:
// an analysis is created exactly once per target.
func (t *Target) Complete(a analyzer.TargetAnalysis) {
	if t.Completed {
		return
	}
	t.Completed = true
	t.Analysis = &a
}

// Weights biases weighted generation toward positions that exercise the
// given weakness kinds. Empty weights select unweighted generation.
type Weights map[analyzer.WeaknessKind]float64

// Tuning holds the knobs of weighted generation. The numbers shape the
// practice feel, they are not correctness properties.
type Tuning struct {
	// MinDistance is the Manhattan spacing enforced in unweighted mode.
	MinDistance int
	// NearDistance is the spacing below which weighted mode excludes a
	// candidate outright.
	NearDistance int
	// Jitter is the amplitude of the random score noise that keeps
	// target sequences from being fully predictable.
	Jitter float64
	// PoolMin and PoolFraction define the top-scoring pool sampled from:
	// at least PoolMin candidates, at least PoolFraction of the field.
	PoolMin      int
	PoolFraction float64
}

// DefaultTuning returns the stock tuning.
func DefaultTuning() Tuning {
	return Tuning{
		MinDistance:  5,
		NearDistance: 3,
		Jitter:       2.0,
		PoolMin:      3,
		PoolFraction: 0.2,
	}
}

// Generator produces target sequences for a session.
type Generator struct {
	rnd    *rand.Rand
	tuning Tuning
}

// New returns a Generator seeded with the current time.
func New(tuning Tuning) *Generator {
	return NewWithSource(tuning, rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator with an explicit random source, for
// reproducible sequences.
func NewWithSource(tuning Tuning, src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src), tuning: tuning}
}

// Generate picks count reachable positions starting from start. With
// weights it scores candidates against the current cursor per weakness
// heuristics; without, it shuffles and enforces a minimum spacing. Each
// accepted target carries the optimal solution from its predecessor.
func (g *Generator) Generate(buf buffer.Buffer, count int, start buffer.Position, weights Weights) []Target {
	candidates := candidatePositions(buf)
	var picked []buffer.Position
	if len(weights) > 0 {
		picked = g.pickWeighted(buf, candidates, count, start, weights)
	} else {
		picked = g.pickUnweighted(candidates, count, start)
	}

	targets := make([]Target, 0, len(picked))
	prev := start
	for _, p := range picked {
		sols := solver.Solve(prev, p, buf)
		targets = append(targets, Target{Pos: p, Optimal: sols[0]})
		prev = p
	}
	return targets
}

// candidatePositions lists every non-whitespace character position.
func candidatePositions(buf buffer.Buffer) []buffer.Position {
	var out []buffer.Position
	for line := 0; line < buf.LineCount(); line++ {
		for col, r := range []rune(buf.Line(line)) {
			if r == ' ' || r == '\t' {
				continue
			}
			out = append(out, buffer.Position{Line: line, Col: col})
		}
	}
	return out
}

func manhattan(a, b buffer.Position) int {
	return abs(a.Line-b.Line) + abs(a.Col-b.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (g *Generator) pickUnweighted(candidates []buffer.Position, count int, start buffer.Position) []buffer.Position {
	shuffled := make([]buffer.Position, len(candidates))
	copy(shuffled, candidates)
	g.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var out []buffer.Position
	prev := start
	for _, p := range shuffled {
		if len(out) >= count {
			break
		}
		if manhattan(p, prev) < g.tuning.MinDistance {
			continue
		}
		out = append(out, p)
		prev = p
	}
	return out
}

func (g *Generator) pickWeighted(buf buffer.Buffer, candidates []buffer.Position, count int, start buffer.Position, weights Weights) []buffer.Position {
	remaining := make([]buffer.Position, len(candidates))
	copy(remaining, candidates)

	var out []buffer.Position
	cur := start
	for len(out) < count && len(remaining) > 0 {
		type scored struct {
			idx   int
			score float64
		}
		field := make([]scored, 0, len(remaining))
		for i, p := range remaining {
			// Hard cutoff: trivially close targets teach nothing.
			if manhattan(cur, p) < g.tuning.NearDistance {
				continue
			}
			field = append(field, scored{idx: i, score: g.score(buf, cur, p, weights)})
		}
		if len(field) == 0 {
			break
		}
		sort.SliceStable(field, func(i, j int) bool {
			return field[i].score > field[j].score
		})

		pool := int(float64(len(field)) * g.tuning.PoolFraction)
		if pool < g.tuning.PoolMin {
			pool = g.tuning.PoolMin
		}
		if pool > len(field) {
			pool = len(field)
		}
		chosen := field[g.rnd.Intn(pool)]

		p := remaining[chosen.idx]
		out = append(out, p)
		remaining = append(remaining[:chosen.idx], remaining[chosen.idx+1:]...)
		cur = p
	}
	return out
}

// Per-weakness score bonuses. A candidate that lets the user practice a
// weak motion family scores higher in proportion to that weakness weight.
const (
	bracketBonus   = 6.0
	wordBonus      = 4.0
	lineBonus      = 4.0
	findBonus      = 3.0
	paragraphBonus = 5.0
	countBonus     = 4.0
	distanceScale  = 0.2
)

func (g *Generator) score(buf buffer.Buffer, cur, p buffer.Position, weights Weights) float64 {
	score := g.rnd.Float64() * g.tuning.Jitter

	// Mild preference for longer jumps, which leave room for motions
	// beyond plain h/j/k/l.
	score += float64(manhattan(cur, p)) * distanceScale

	ch := buf.CharAt(p)
	if w := weights[analyzer.MissingBracketMatching]; w > 0 && isBracket(ch) {
		score += w * bracketBonus
	}
	if w := weights[analyzer.MissingWordMotions]; w > 0 && isWordStart(buf, p) {
		score += w * wordBonus
	}
	if w := weights[analyzer.MissingLineMotions]; w > 0 && isLineEdge(buf, p) {
		score += w * lineBonus
	}
	if w := weights[analyzer.MissingFindMotions]; w > 0 && isPunct(ch) {
		score += w * findBonus
	}
	if w := weights[analyzer.MissingParagraphMotions]; w > 0 && nearBlankLine(buf, p.Line) {
		score += w * paragraphBonus
	}
	if w := weights[analyzer.MissingCountPrefix]; w > 0 && abs(p.Line-cur.Line) >= 5 {
		score += w * countBonus
	}
	return score
}

func isBracket(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

func isPunct(r rune) bool {
	if r == 0 || r == ' ' || r == '\t' {
		return false
	}
	if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
		return false
	}
	return true
}

// isWordStart reports whether p begins a word run.
func isWordStart(buf buffer.Buffer, p buffer.Position) bool {
	r := buf.CharAt(p)
	if isPunct(r) || r == 0 || r == ' ' || r == '\t' {
		return false
	}
	if p.Col == 0 {
		return true
	}
	prev := buf.CharAt(buffer.Position{Line: p.Line, Col: p.Col - 1})
	return prev == ' ' || prev == '\t' || isPunct(prev)
}

func isLineEdge(buf buffer.Buffer, p buffer.Position) bool {
	return p.Col == 0 || p.Col == buf.FirstNonBlank(p.Line) || p.Col == buf.MaxCol(p.Line)
}

func nearBlankLine(buf buffer.Buffer, line int) bool {
	return buf.IsBlankLine(line-1) && line > 0 ||
		line+1 < buf.LineCount() && buf.IsBlankLine(line+1)
}
