package session

import (
	"time"

	"github.com/verte-zerg/vimnav/internal/analyzer"
	"github.com/verte-zerg/vimnav/internal/target"
)

// Thresholds maps each weakness kind to the occurrence count above which
// its recommendation is issued. These are configuration, not algorithm.
type Thresholds map[analyzer.WeaknessKind]int

// DefaultThresholds recommends practice once a weakness shows up more
// than once in a session.
func DefaultThresholds() Thresholds {
	t := make(Thresholds, len(analyzer.AllWeaknessKinds))
	for _, k := range analyzer.AllWeaknessKinds {
		t[k] = 1
	}
	return t
}

// recommendations holds the static advice text per weakness kind.
var recommendations = map[analyzer.WeaknessKind]string{
	analyzer.SlowBasicMovement:       "Drill plain h/j/k/l runs; hesitation costs more than route choice here.",
	analyzer.MissingWordMotions:      "Practice w, b and e to cross words in a single keystroke.",
	analyzer.MissingFindMotions:      "Use f, F, t and T to jump straight to a character on the line.",
	analyzer.MissingLineMotions:      "Reach line edges with 0, ^ and $ instead of holding h or l.",
	analyzer.MissingCountPrefix:      "Prefix motions with a count (5j, 3w) instead of repeating them.",
	analyzer.MissingParagraphMotions: "Jump between blocks with { and }.",
	analyzer.MissingBracketMatching:  "Use % to bounce between matching brackets.",
	analyzer.InefficientPath:         "Review the optimal route after each target; you know the motions, pick shorter paths.",
}

// Stats summarizes a finished (or running) session.
type Stats struct {
	TargetsCompleted  int
	OverallEfficiency int // mean of per-target efficiencies, 100 when empty
	OptimalCount      int
	TotalKeys         int
	TotalOptimalKeys  int
	Duration          time.Duration
	WeaknessCounts    map[analyzer.WeaknessKind]int
	Recommendations   []string
}

// Aggregator folds per-target analyses into session statistics.
type Aggregator struct {
	thresholds    Thresholds
	efficiencySum int
	completed     int
	optimal       int
	totalKeys     int
	optimalKeys   int
	weaknesses    map[analyzer.WeaknessKind]int
}

// NewAggregator returns an empty aggregator using the given thresholds.
func NewAggregator(thresholds Thresholds) *Aggregator {
	if thresholds == nil {
		thresholds = DefaultThresholds()
	}
	return &Aggregator{
		thresholds: thresholds,
		weaknesses: make(map[analyzer.WeaknessKind]int),
	}
}

// RecordCompletion folds one completed target into the running tally.
func (a *Aggregator) RecordCompletion(t *target.Target, an analyzer.TargetAnalysis) {
	a.completed++
	a.efficiencySum += an.Efficiency
	a.totalKeys += len(an.UserKeys)
	a.optimalKeys += an.Optimal.Cost()
	if an.IsOptimal {
		a.optimal++
	}
	if an.Weakness != "" {
		a.weaknesses[an.Weakness]++
	}
}

// Summarize builds the session statistics. duration is supplied by the
// caller, which owns the session clock.
func (a *Aggregator) Summarize(duration time.Duration) Stats {
	overall := 100
	if a.completed > 0 {
		// Arithmetic mean, rounded to the nearest integer.
		overall = (a.efficiencySum + a.completed/2) / a.completed
	}

	counts := make(map[analyzer.WeaknessKind]int, len(a.weaknesses))
	for k, v := range a.weaknesses {
		counts[k] = v
	}

	var recs []string
	for _, k := range analyzer.AllWeaknessKinds {
		if counts[k] > a.thresholds[k] {
			recs = append(recs, recommendations[k])
		}
	}

	return Stats{
		TargetsCompleted:  a.completed,
		OverallEfficiency: overall,
		OptimalCount:      a.optimal,
		TotalKeys:         a.totalKeys,
		TotalOptimalKeys:  a.optimalKeys,
		Duration:          duration,
		WeaknessCounts:    counts,
		Recommendations:   recs,
	}
}

// Recommendation returns the advice text for a weakness kind.
func Recommendation(k analyzer.WeaknessKind) string {
	return recommendations[k]
}
