// Package analyzer scores recorded keystroke sequences against the
// optimal solution and classifies what held the user back.
package analyzer

import (
	"math"
	"strings"

	"github.com/verte-zerg/vimnav/internal/buffer"
	"github.com/verte-zerg/vimnav/internal/solver"
)

// WeaknessKind classifies why a user's path was sub-optimal.
type WeaknessKind string

const (
	SlowBasicMovement       WeaknessKind = "slow-basic-movement"
	MissingWordMotions      WeaknessKind = "missing-word-motions"
	MissingFindMotions      WeaknessKind = "missing-find-motions"
	MissingLineMotions      WeaknessKind = "missing-line-motions"
	MissingCountPrefix      WeaknessKind = "missing-count-prefix"
	MissingParagraphMotions WeaknessKind = "missing-paragraph-motions"
	MissingBracketMatching  WeaknessKind = "missing-bracket-matching"
	InefficientPath         WeaknessKind = "inefficient-path"
)

// AllWeaknessKinds lists every kind in a stable display order.
var AllWeaknessKinds = []WeaknessKind{
	SlowBasicMovement,
	MissingWordMotions,
	MissingFindMotions,
	MissingLineMotions,
	MissingCountPrefix,
	MissingParagraphMotions,
	MissingBracketMatching,
	InefficientPath,
}

// SlowBasicThresholdSeconds is the time above which an optimal-by-basic
// target still counts as slow movement.
const SlowBasicThresholdSeconds = 5.0

// TargetAnalysis is the immutable record produced when the cursor first
// lands exactly on a target.
type TargetAnalysis struct {
	Optimal          solver.Solution
	Alternatives     []solver.Solution
	UserKeys         []string
	Efficiency       int // 0..100
	TimeTakenSeconds float64
	IsOptimal        bool
	Weakness         WeaknessKind // empty when the user was optimal
}

// motionFamilies maps solution categories to the keys whose presence in
// the user's input shows they at least tried the right family.
var motionFamilies = map[solver.Category]string{
	solver.CategoryWord:      "wbeWBE",
	solver.CategoryFind:      "fFtT",
	solver.CategoryLine:      "0^$_+-",
	solver.CategoryCount:     "0123456789",
	solver.CategoryParagraph: "{}",
	solver.CategoryBracket:   "%",
}

// Analyze computes the ground truth for (from, to), scores userKeys
// against it and attaches a weakness classification. It is a pure
// function: identical inputs yield identical analyses.
func Analyze(from, to buffer.Position, buf buffer.Buffer, userKeys []string, timeTakenSeconds float64) TargetAnalysis {
	solutions := solver.Solve(from, to, buf)
	optimal := solutions[0]
	optimalCost := optimal.Cost()

	keyCount := len(userKeys)
	denom := keyCount
	if denom < 1 {
		denom = 1
	}
	efficiency := int(math.Round(100 * float64(optimalCost) / float64(denom)))
	if efficiency > 100 {
		efficiency = 100
	}

	a := TargetAnalysis{
		Optimal:          optimal,
		Alternatives:     solutions[1:],
		UserKeys:         userKeys,
		Efficiency:       efficiency,
		TimeTakenSeconds: timeTakenSeconds,
		IsOptimal:        keyCount <= optimalCost,
	}
	a.Weakness = classify(a)
	return a
}

// classify applies the weakness rules in priority order; the first match
// wins and an optimal run records nothing.
func classify(a TargetAnalysis) WeaknessKind {
	if a.TimeTakenSeconds > SlowBasicThresholdSeconds && a.Optimal.Category == solver.CategoryBasic {
		return SlowBasicMovement
	}
	if a.IsOptimal {
		return ""
	}
	family, ok := motionFamilies[a.Optimal.Category]
	if !ok {
		return InefficientPath
	}
	typed := strings.Join(a.UserKeys, "")
	if !strings.ContainsAny(typed, family) {
		switch a.Optimal.Category {
		case solver.CategoryWord:
			return MissingWordMotions
		case solver.CategoryFind:
			return MissingFindMotions
		case solver.CategoryLine:
			return MissingLineMotions
		case solver.CategoryCount:
			return MissingCountPrefix
		case solver.CategoryParagraph:
			return MissingParagraphMotions
		case solver.CategoryBracket:
			return MissingBracketMatching
		}
	}
	return InefficientPath
}
