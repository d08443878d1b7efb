package solver

import (
	"reflect"
	"testing"

	"github.com/verte-zerg/vimnav/internal/buffer"
	"github.com/verte-zerg/vimnav/internal/motion"
)

func pos(line, col int) buffer.Position {
	return buffer.Position{Line: line, Col: col}
}

// verify replays a solution from from and checks it lands on to.
func verify(t *testing.T, s Solution, from, to buffer.Position, buf buffer.Buffer) {
	t.Helper()
	cur := from
	for _, m := range s.Motions {
		cur = motion.Apply(cur, m, buf)
	}
	if cur != to {
		t.Fatalf("solution %q lands on %+v, want %+v", s.Keys(), cur, to)
	}
}

func TestSolveWordOptimal(t *testing.T) {
	buf := buffer.Buffer{"def example():"}
	sols := Solve(pos(0, 0), pos(0, 4), buf)
	if len(sols) == 0 {
		t.Fatal("no solutions")
	}
	best := sols[0]
	if best.Keys() != "w" || best.Category != CategoryWord || best.Cost() != 1 {
		t.Fatalf("best = %q (%s, cost %d), want w (word, 1)", best.Keys(), best.Category, best.Cost())
	}
}

func TestSolveBasicOptimal(t *testing.T) {
	buf := buffer.Buffer{"abc", "def"}
	sols := Solve(pos(0, 0), pos(1, 0), buf)
	best := sols[0]
	if best.Keys() != "j" || best.Category != CategoryBasic {
		t.Fatalf("best = %q (%s), want j (basic)", best.Keys(), best.Category)
	}
}

func TestSolveBracketOptimal(t *testing.T) {
	buf := buffer.Buffer{"(foo(bar))"}
	sols := Solve(pos(0, 0), pos(0, 9), buf)
	best := sols[0]
	if best.Keys() != "%" || best.Category != CategoryBracket {
		t.Fatalf("best = %q (%s), want %% (bracket)", best.Keys(), best.Category)
	}
}

func TestSolveParagraphCandidate(t *testing.T) {
	buf := buffer.Buffer{"x = 1", "y = 2", "z = 3", "", "end"}
	sols := Solve(pos(0, 0), pos(4, 0), buf)
	found := false
	for _, s := range sols {
		if s.Category == CategoryParagraph {
			found = true
			verify(t, s, pos(0, 0), pos(4, 0), buf)
		}
	}
	if !found {
		t.Fatalf("no paragraph candidate in %d solutions", len(sols))
	}
}

func TestSolveTrivial(t *testing.T) {
	buf := buffer.Buffer{""}
	sols := Solve(pos(0, 0), pos(0, 0), buf)
	if len(sols) != 1 {
		t.Fatalf("expected single trivial solution, got %d", len(sols))
	}
	s := sols[0]
	if s.Cost() != 0 || s.Category != CategoryBasic || len(s.Motions) != 0 {
		t.Fatalf("trivial solution = %+v", s)
	}
}

func TestSolveFindCandidate(t *testing.T) {
	buf := buffer.Buffer{"let value = compute(input)"}
	to := pos(0, 12) // the 'c' of compute
	sols := Solve(pos(0, 0), to, buf)
	found := false
	for _, s := range sols {
		if s.Category == CategoryFind {
			found = true
			verify(t, s, pos(0, 0), to, buf)
		}
	}
	if !found {
		t.Fatal("no find candidate")
	}
}

func TestFindRejectedOnEarlierOccurrence(t *testing.T) {
	// 'e' occurs at column 1 before the target column 4, so fe cannot be
	// a candidate for (0,4).
	buf := buffer.Buffer{"def example():"}
	sols := Solve(pos(0, 0), pos(0, 4), buf)
	for _, s := range sols {
		if len(s.Motions) == 1 && s.Motions[0].Kind == motion.FindCharForward {
			t.Fatalf("fe should have been rejected, got %q", s.Keys())
		}
	}
}

func TestSolveLineEndOptimal(t *testing.T) {
	buf := buffer.Buffer{"some longer line here"}
	sols := Solve(pos(0, 3), pos(0, 20), buf)
	best := sols[0]
	if best.Keys() != "$" || best.Category != CategoryLine {
		t.Fatalf("best = %q (%s), want $ (line)", best.Keys(), best.Category)
	}
}

func TestSolveDocumentEnd(t *testing.T) {
	buf := buffer.Buffer{"a", "b", "c", "d", "e", "f", "g", "h"}
	sols := Solve(pos(0, 0), pos(7, 0), buf)
	best := sols[0]
	if best.Keys() != "G" || best.Category != CategoryDocument {
		t.Fatalf("best = %q (%s), want G (document)", best.Keys(), best.Category)
	}
}

func TestSolveGoToLine(t *testing.T) {
	buf := buffer.Buffer{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	sols := Solve(pos(0, 0), pos(9, 0), buf)
	found := false
	for _, s := range sols {
		if s.Keys() == "10G" {
			found = true
			verify(t, s, pos(0, 0), pos(9, 0), buf)
		}
	}
	if !found {
		t.Fatal("no 10G candidate")
	}
}

func TestSolveCountPrefix(t *testing.T) {
	buf := buffer.Buffer{"aaaaaaaaaaaa"}
	sols := Solve(pos(0, 0), pos(0, 7), buf)
	found := false
	for _, s := range sols {
		if s.Keys() == "7l" {
			found = true
			if s.Category != CategoryCount {
				t.Fatalf("7l category = %s, want count", s.Category)
			}
		}
	}
	if !found {
		t.Fatal("no 7l candidate")
	}
}

func TestSolveRelativeLine(t *testing.T) {
	buf := buffer.Buffer{"first", "  second", "third"}
	sols := Solve(pos(0, 3), pos(1, 2), buf)
	found := false
	for _, s := range sols {
		if s.Keys() == "+" {
			found = true
			if s.Category != CategoryLine {
				t.Fatalf("+ category = %s, want line", s.Category)
			}
		}
	}
	if !found {
		t.Fatal("no + candidate")
	}
}

func TestSolveNeverEmptyAndFirstIsExact(t *testing.T) {
	buf := buffer.Buffer{"def f(x):", "    return (x *", "            2)", "", "print(f(3))"}
	for line := 0; line < buf.LineCount(); line++ {
		for col := 0; col <= buf.MaxCol(line); col++ {
			from := pos(0, 0)
			to := pos(line, col)
			sols := Solve(from, to, buf)
			if len(sols) == 0 {
				t.Fatalf("empty solution list for %+v", to)
			}
			verify(t, sols[0], from, to, buf)
		}
	}
}

func TestSolveSortedByCost(t *testing.T) {
	buf := buffer.Buffer{"x = 1", "y = 2", "z = 3", "", "end"}
	sols := Solve(pos(0, 0), pos(4, 0), buf)
	for i := 1; i < len(sols); i++ {
		if sols[i-1].Cost() > sols[i].Cost() {
			t.Fatalf("not sorted: %q (%d) before %q (%d)",
				sols[i-1].Keys(), sols[i-1].Cost(), sols[i].Keys(), sols[i].Cost())
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	buf := buffer.Buffer{"def f(x):", "    return x", "", "f(1)"}
	a := Solve(pos(0, 2), pos(3, 2), buf)
	b := Solve(pos(0, 2), pos(3, 2), buf)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("solve is not deterministic:\n%+v\n%+v", a, b)
	}
}
