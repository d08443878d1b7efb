package target

import (
	"math/rand"
	"testing"

	"github.com/verte-zerg/vimnav/internal/analyzer"
	"github.com/verte-zerg/vimnav/internal/buffer"
	"github.com/verte-zerg/vimnav/internal/motion"
)

var testBuf = buffer.Buffer{
	"func binarySearch(arr []int, target int) int {",
	"\tleft, right := 0, len(arr)-1",
	"\tfor left <= right {",
	"\t\tmid := (left + right) / 2",
	"\t\tif arr[mid] == target {",
	"\t\t\treturn mid",
	"\t\t}",
	"\t}",
	"\treturn -1",
	"}",
}

func newTestGenerator(seed int64) *Generator {
	return NewWithSource(DefaultTuning(), rand.NewSource(seed))
}

func TestGenerateUnweightedSpacing(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := newTestGenerator(seed)
		targets := g.Generate(testBuf, 5, buffer.Position{}, nil)
		prev := buffer.Position{}
		for i, tgt := range targets {
			if d := manhattan(tgt.Pos, prev); d < DefaultTuning().MinDistance {
				t.Fatalf("seed %d target %d at distance %d < %d", seed, i, d, DefaultTuning().MinDistance)
			}
			prev = tgt.Pos
		}
	}
}

func TestGenerateWeightedSpacing(t *testing.T) {
	weights := Weights{analyzer.MissingWordMotions: 2.0}
	for seed := int64(0); seed < 20; seed++ {
		g := newTestGenerator(seed)
		targets := g.Generate(testBuf, 5, buffer.Position{}, weights)
		if len(targets) == 0 {
			t.Fatalf("seed %d: no targets", seed)
		}
		prev := buffer.Position{}
		for i, tgt := range targets {
			if d := manhattan(tgt.Pos, prev); d < DefaultTuning().NearDistance {
				t.Fatalf("seed %d target %d at distance %d < %d", seed, i, d, DefaultTuning().NearDistance)
			}
			prev = tgt.Pos
		}
	}
}

func TestGenerateTargetsAreNonWhitespace(t *testing.T) {
	g := newTestGenerator(1)
	targets := g.Generate(testBuf, 8, buffer.Position{}, nil)
	for _, tgt := range targets {
		r := testBuf.CharAt(tgt.Pos)
		if r == 0 || r == ' ' || r == '\t' {
			t.Fatalf("target %+v is on whitespace (%q)", tgt.Pos, r)
		}
	}
}

func TestGenerateAttachesOptimalSolutions(t *testing.T) {
	g := newTestGenerator(2)
	targets := g.Generate(testBuf, 5, buffer.Position{}, nil)
	prev := buffer.Position{}
	for i, tgt := range targets {
		cur := prev
		for _, m := range tgt.Optimal.Motions {
			cur = motion.Apply(cur, m, testBuf)
		}
		if cur != tgt.Pos {
			t.Fatalf("target %d: optimal %q lands on %+v, want %+v", i, tgt.Optimal.Keys(), cur, tgt.Pos)
		}
		prev = tgt.Pos
	}
}

func TestGenerateWeightedPrefersBrackets(t *testing.T) {
	// With a dominant bracket weight, most seeds should pick at least one
	// bracket position in a bracket-heavy buffer.
	weights := Weights{analyzer.MissingBracketMatching: 5.0}
	hits := 0
	for seed := int64(0); seed < 10; seed++ {
		g := newTestGenerator(seed)
		targets := g.Generate(testBuf, 5, buffer.Position{}, weights)
		for _, tgt := range targets {
			if isBracket(testBuf.CharAt(tgt.Pos)) {
				hits++
				break
			}
		}
	}
	if hits < 7 {
		t.Fatalf("bracket positions picked in only %d/10 seeded runs", hits)
	}
}

func TestGenerateExhaustsCandidates(t *testing.T) {
	small := buffer.Buffer{"ab"}
	g := newTestGenerator(3)
	targets := g.Generate(small, 10, buffer.Position{}, nil)
	// Only two candidates exist and both are too close to qualify.
	if len(targets) > 2 {
		t.Fatalf("got %d targets from a 2-char buffer", len(targets))
	}
}

func TestCompleteIsCreateOnce(t *testing.T) {
	tgt := Target{Pos: buffer.Position{Line: 1, Col: 2}}
	first := analyzer.TargetAnalysis{Efficiency: 50}
	second := analyzer.TargetAnalysis{Efficiency: 90}
	tgt.Complete(first)
	tgt.Complete(second)
	if tgt.Analysis == nil || tgt.Analysis.Efficiency != 50 {
		t.Fatalf("analysis overwritten: %+v", tgt.Analysis)
	}
}
