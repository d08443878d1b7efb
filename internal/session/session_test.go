package session

import (
	"testing"
	"time"

	"github.com/verte-zerg/vimnav/internal/analyzer"
	"github.com/verte-zerg/vimnav/internal/buffer"
	"github.com/verte-zerg/vimnav/internal/solver"
	"github.com/verte-zerg/vimnav/internal/target"
)

func pos(line, col int) buffer.Position {
	return buffer.Position{Line: line, Col: col}
}

// makeTargets builds targets with ground truth solved from the chained
// start positions, the way the generator does.
func makeTargets(buf buffer.Buffer, start buffer.Position, positions ...buffer.Position) []target.Target {
	var out []target.Target
	prev := start
	for _, p := range positions {
		sols := solver.Solve(prev, p, buf)
		out = append(out, target.Target{Pos: p, Optimal: sols[0]})
		prev = p
	}
	return out
}

func feed(t *testing.T, s *State, at time.Time, keys ...string) []Event {
	t.Helper()
	var events []Event
	for _, k := range keys {
		events = append(events, s.OnKey(k, at)...)
	}
	return events
}

func TestSessionLifecycle(t *testing.T) {
	buf := buffer.Buffer{"abc", "def"}
	targets := makeTargets(buf, pos(0, 0), pos(1, 0))
	s := NewState(buf, targets, pos(0, 0), nil)

	if s.Phase != PhaseIdle {
		t.Fatalf("phase = %d, want idle", s.Phase)
	}
	now := time.Unix(0, 0)
	s.Start(now)
	if s.Phase != PhasePlaying {
		t.Fatalf("phase = %d, want playing", s.Phase)
	}

	events := feed(t, s, now.Add(time.Second), "j")
	if len(events) != 2 {
		t.Fatalf("expected TargetReached + SessionFinished, got %d events", len(events))
	}
	if events[0].Type() != EventTargetReached {
		t.Fatalf("first event = %s", events[0].Type())
	}
	if events[1].Type() != EventSessionFinished {
		t.Fatalf("second event = %s", events[1].Type())
	}
	if s.Phase != PhaseFinished {
		t.Fatalf("phase = %d, want finished", s.Phase)
	}

	reached := events[0].(TargetReachedEvent)
	if !reached.Analysis.IsOptimal || reached.Analysis.Efficiency != 100 {
		t.Fatalf("analysis = %+v", reached.Analysis)
	}
}

func TestOnKeyIgnoredOutsidePlaying(t *testing.T) {
	buf := buffer.Buffer{"abc"}
	s := NewState(buf, makeTargets(buf, pos(0, 0), pos(0, 2)), pos(0, 0), nil)
	if events := s.OnKey("l", time.Unix(0, 0)); events != nil {
		t.Fatalf("idle OnKey produced events: %v", events)
	}
	if s.Cursor != pos(0, 0) {
		t.Fatalf("idle OnKey moved cursor to %+v", s.Cursor)
	}
}

func TestCountPrefixParsing(t *testing.T) {
	buf := buffer.Buffer{"a", "b", "c", "d", "e", "f"}
	targets := makeTargets(buf, pos(0, 0), pos(5, 0))
	s := NewState(buf, targets, pos(0, 0), nil)
	now := time.Unix(0, 0)
	s.Start(now)

	feed(t, s, now, "5")
	if s.Pending() != "5" {
		t.Fatalf("pending = %q, want 5", s.Pending())
	}
	events := feed(t, s, now, "j")
	if s.Cursor != pos(5, 0) {
		t.Fatalf("cursor = %+v, want (5,0)", s.Cursor)
	}
	if len(events) == 0 || events[0].Type() != EventTargetReached {
		t.Fatal("expected target reached")
	}
	reached := events[0].(TargetReachedEvent)
	if got := len(reached.Analysis.UserKeys); got != 2 {
		t.Fatalf("user keys = %v, want 2 entries", reached.Analysis.UserKeys)
	}
}

func TestFindCharParsing(t *testing.T) {
	buf := buffer.Buffer{"abcxdef"}
	targets := makeTargets(buf, pos(0, 0), pos(0, 3))
	s := NewState(buf, targets, pos(0, 0), nil)
	now := time.Unix(0, 0)
	s.Start(now)

	feed(t, s, now, "f")
	if s.Pending() != "f" {
		t.Fatalf("pending = %q, want f", s.Pending())
	}
	events := feed(t, s, now, "x")
	if s.Cursor != pos(0, 3) {
		t.Fatalf("cursor = %+v, want (0,3)", s.Cursor)
	}
	if len(events) == 0 {
		t.Fatal("expected arrival")
	}
}

func TestGGParsing(t *testing.T) {
	buf := buffer.Buffer{"top", "mid", "bot"}
	targets := makeTargets(buf, pos(2, 2), pos(0, 0))
	s := NewState(buf, targets, pos(2, 2), nil)
	now := time.Unix(0, 0)
	s.Start(now)

	feed(t, s, now, "g")
	if s.Pending() != "g" {
		t.Fatalf("pending = %q, want g", s.Pending())
	}
	feed(t, s, now, "g")
	if s.Cursor != pos(0, 0) {
		t.Fatalf("cursor = %+v, want (0,0)", s.Cursor)
	}
}

func TestGoToLineParsing(t *testing.T) {
	buf := buffer.Buffer{"a", "b", "c", "d"}
	targets := makeTargets(buf, pos(0, 0), pos(2, 0))
	s := NewState(buf, targets, pos(0, 0), nil)
	now := time.Unix(0, 0)
	s.Start(now)

	feed(t, s, now, "3", "G")
	if s.Cursor != pos(2, 0) {
		t.Fatalf("cursor = %+v, want (2,0)", s.Cursor)
	}
}

func TestUnknownKeyClearsPending(t *testing.T) {
	buf := buffer.Buffer{"abc", "def"}
	targets := makeTargets(buf, pos(0, 0), pos(1, 2))
	s := NewState(buf, targets, pos(0, 0), nil)
	now := time.Unix(0, 0)
	s.Start(now)

	feed(t, s, now, "4", "q")
	if s.Pending() != "" {
		t.Fatalf("pending = %q, want cleared", s.Pending())
	}
}

func TestAnalysisUsesPerTargetKeys(t *testing.T) {
	buf := buffer.Buffer{"abcdef", "ghijkl"}
	targets := makeTargets(buf, pos(0, 0), pos(0, 5), pos(1, 0))
	s := NewState(buf, targets, pos(0, 0), nil)
	now := time.Unix(0, 0)
	s.Start(now)

	// Wander without touching the first target, then land on it.
	feed(t, s, now, "l", "l", "l", "l", "h")
	if s.Phase != PhasePlaying || s.Index != 0 {
		t.Fatalf("wander completed a target early: index=%d cursor=%+v", s.Index, s.Cursor)
	}
	events := feed(t, s, now, "$")
	if len(events) == 0 {
		t.Fatal("expected first arrival")
	}
	first := events[0].(TargetReachedEvent)
	if len(first.Analysis.UserKeys) != 6 {
		t.Fatalf("first target keys = %v", first.Analysis.UserKeys)
	}

	// The second target's analysis must only see keys typed after it
	// became active.
	events = feed(t, s, now, "j", "0")
	var second *TargetReachedEvent
	for _, e := range events {
		if e.Type() == EventTargetReached {
			ev := e.(TargetReachedEvent)
			second = &ev
		}
	}
	if second == nil {
		t.Fatal("expected second arrival")
	}
	if len(second.Analysis.UserKeys) != 2 {
		t.Fatalf("second target keys = %v", second.Analysis.UserKeys)
	}
}

func TestAggregatorSummarize(t *testing.T) {
	agg := NewAggregator(nil)
	if got := agg.Summarize(0).OverallEfficiency; got != 100 {
		t.Fatalf("empty overall = %d, want 100", got)
	}

	tgt := &target.Target{}
	agg.RecordCompletion(tgt, analyzer.TargetAnalysis{
		Efficiency: 40,
		UserKeys:   []string{"h", "h"},
		Weakness:   analyzer.MissingWordMotions,
	})
	agg.RecordCompletion(tgt, analyzer.TargetAnalysis{
		Efficiency: 60,
		UserKeys:   []string{"j"},
		Weakness:   analyzer.MissingWordMotions,
		Optimal:    solver.Solution{},
	})
	stats := agg.Summarize(time.Minute)
	if stats.OverallEfficiency != 50 {
		t.Fatalf("overall = %d, want 50", stats.OverallEfficiency)
	}
	if stats.WeaknessCounts[analyzer.MissingWordMotions] != 2 {
		t.Fatalf("weakness counts = %v", stats.WeaknessCounts)
	}
	if len(stats.Recommendations) != 1 {
		t.Fatalf("recommendations = %v", stats.Recommendations)
	}
	if stats.Duration != time.Minute {
		t.Fatalf("duration = %v", stats.Duration)
	}
}

func TestAggregatorRoundsEfficiency(t *testing.T) {
	agg := NewAggregator(nil)
	tgt := &target.Target{}
	agg.RecordCompletion(tgt, analyzer.TargetAnalysis{Efficiency: 33})
	agg.RecordCompletion(tgt, analyzer.TargetAnalysis{Efficiency: 34})
	if got := agg.Summarize(0).OverallEfficiency; got != 34 {
		t.Fatalf("overall = %d, want 34 (rounded mean of 33 and 34)", got)
	}
}

func TestEmptyTargetListFinishesImmediately(t *testing.T) {
	buf := buffer.Buffer{"abc"}
	s := NewState(buf, nil, pos(0, 0), nil)
	events := s.Start(time.Unix(0, 0))
	if s.Phase != PhaseFinished {
		t.Fatalf("phase = %d, want finished", s.Phase)
	}
	if len(events) != 1 || events[0].Type() != EventSessionFinished {
		t.Fatalf("events = %v", events)
	}
}
