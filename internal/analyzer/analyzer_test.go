package analyzer

import (
	"reflect"
	"testing"

	"github.com/verte-zerg/vimnav/internal/buffer"
)

func pos(line, col int) buffer.Position {
	return buffer.Position{Line: line, Col: col}
}

func TestAnalyzeMissingWordMotions(t *testing.T) {
	buf := buffer.Buffer{"def example():"}
	a := Analyze(pos(0, 0), pos(0, 4), buf, []string{"h", "h", "h", "h", "h"}, 1.0)
	if a.Efficiency != 20 {
		t.Fatalf("efficiency = %d, want 20", a.Efficiency)
	}
	if a.IsOptimal {
		t.Fatal("expected non-optimal")
	}
	if a.Weakness != MissingWordMotions {
		t.Fatalf("weakness = %q, want %q", a.Weakness, MissingWordMotions)
	}
}

func TestAnalyzeOptimalRecordsNoWeakness(t *testing.T) {
	buf := buffer.Buffer{"def example():"}
	a := Analyze(pos(0, 0), pos(0, 4), buf, []string{"w"}, 1.0)
	if !a.IsOptimal {
		t.Fatal("expected optimal")
	}
	if a.Efficiency != 100 {
		t.Fatalf("efficiency = %d, want 100", a.Efficiency)
	}
	if a.Weakness != "" {
		t.Fatalf("weakness = %q, want none", a.Weakness)
	}
}

func TestAnalyzeSlowBasicMovement(t *testing.T) {
	buf := buffer.Buffer{"abc", "def"}
	a := Analyze(pos(0, 0), pos(1, 0), buf, []string{"j"}, 7.5)
	if a.Weakness != SlowBasicMovement {
		t.Fatalf("weakness = %q, want %q", a.Weakness, SlowBasicMovement)
	}
}

func TestAnalyzeInefficientPath(t *testing.T) {
	// The user reached for the right family but typed extra keys.
	buf := buffer.Buffer{"def example():"}
	a := Analyze(pos(0, 0), pos(0, 4), buf, []string{"w", "l", "h"}, 1.0)
	if a.IsOptimal {
		t.Fatal("expected non-optimal")
	}
	if a.Weakness != InefficientPath {
		t.Fatalf("weakness = %q, want %q", a.Weakness, InefficientPath)
	}
}

func TestAnalyzeMissingBracketMatching(t *testing.T) {
	buf := buffer.Buffer{"(foo(bar))"}
	a := Analyze(pos(0, 0), pos(0, 9), buf, []string{"l", "l", "l", "l", "l", "l", "l", "l", "l"}, 1.0)
	if a.Weakness != MissingBracketMatching {
		t.Fatalf("weakness = %q, want %q", a.Weakness, MissingBracketMatching)
	}
}

func TestAnalyzeEfficiencyBounds(t *testing.T) {
	buf := buffer.Buffer{"def example():"}
	// No keys at all still yields a bounded score.
	a := Analyze(pos(0, 0), pos(0, 4), buf, nil, 0)
	if a.Efficiency < 0 || a.Efficiency > 100 {
		t.Fatalf("efficiency out of bounds: %d", a.Efficiency)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	buf := buffer.Buffer{"x = 1", "y = 2", "z = 3", "", "end"}
	keys := []string{"j", "j", "j", "j"}
	a := Analyze(pos(0, 0), pos(4, 0), buf, keys, 2.0)
	b := Analyze(pos(0, 0), pos(4, 0), buf, keys, 2.0)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("analyze is not idempotent:\n%+v\n%+v", a, b)
	}
}
