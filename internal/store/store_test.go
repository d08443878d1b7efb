package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/vimnav/internal/analyzer"
	"github.com/verte-zerg/vimnav/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "vimnav.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertTestSession(t *testing.T, st *Store, lang string, efficiency int, endedAt time.Time, weaknesses []model.WeaknessStats) int64 {
	t.Helper()
	rec := model.SessionRecord{
		StartedAt:         endedAt.Add(-time.Minute),
		EndedAt:           endedAt,
		Lang:              lang,
		TargetsCompleted:  10,
		OptimalCount:      7,
		TotalKeys:         40,
		TotalOptimalKeys:  30,
		OverallEfficiency: efficiency,
		DurationMs:        time.Minute.Milliseconds(),
	}
	id, err := st.InsertSession(context.Background(), rec, weaknesses)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	return id
}

func weaknessCount(aggs []model.WeaknessAggregate, kind analyzer.WeaknessKind) int {
	for _, agg := range aggs {
		if agg.Kind == string(kind) {
			return agg.Count
		}
	}
	return 0
}

func TestGetWeaknessesWindowAndLang(t *testing.T) {
	st := openTestStore(t)
	base := time.Unix(0, 0)
	word := string(analyzer.MissingWordMotions)
	find := string(analyzer.MissingFindMotions)

	insertTestSession(t, st, "go", 60, base, []model.WeaknessStats{{Kind: word, Count: 5}})
	insertTestSession(t, st, "go", 90, base.Add(time.Hour), []model.WeaknessStats{{Kind: word, Count: 2}, {Kind: find, Count: 1}})
	insertTestSession(t, st, "python", 80, base.Add(2*time.Hour), []model.WeaknessStats{{Kind: find, Count: 4}})
	insertTestSession(t, st, "go", 90, base.Add(3*time.Hour), []model.WeaknessStats{{Kind: word, Count: 1}})

	ctx := context.Background()

	// Window of 2 over all languages sees only the newest two sessions.
	aggs, err := st.GetWeaknesses(ctx, 2, "")
	if err != nil {
		t.Fatalf("GetWeaknesses: %v", err)
	}
	if got := weaknessCount(aggs, analyzer.MissingWordMotions); got != 1 {
		t.Fatalf("word count over window = %d, want 1", got)
	}
	if got := weaknessCount(aggs, analyzer.MissingFindMotions); got != 4 {
		t.Fatalf("find count over window = %d, want 4", got)
	}

	// The lang filter shifts the window to the newest go sessions.
	aggs, err = st.GetWeaknesses(ctx, 2, "go")
	if err != nil {
		t.Fatalf("GetWeaknesses lang: %v", err)
	}
	if got := weaknessCount(aggs, analyzer.MissingWordMotions); got != 3 {
		t.Fatalf("word count for go = %d, want 3", got)
	}
	if got := weaknessCount(aggs, analyzer.MissingFindMotions); got != 1 {
		t.Fatalf("find count for go = %d, want 1", got)
	}

	aggs, err = st.GetWeaknesses(ctx, 0, "")
	if err != nil {
		t.Fatalf("GetWeaknesses zero window: %v", err)
	}
	if aggs != nil {
		t.Fatalf("zero window = %v, want nil", aggs)
	}
}

func TestTopSessionsOrderingAndFilter(t *testing.T) {
	st := openTestStore(t)
	base := time.Unix(0, 0)

	low := insertTestSession(t, st, "go", 60, base, nil)
	older := insertTestSession(t, st, "go", 90, base.Add(time.Hour), nil)
	python := insertTestSession(t, st, "python", 80, base.Add(2*time.Hour), nil)
	newest := insertTestSession(t, st, "go", 90, base.Add(3*time.Hour), nil)

	ctx := context.Background()

	// Zero limit falls back to the default and returns everything here.
	sessions, err := st.TopSessions(ctx, "", 0)
	if err != nil {
		t.Fatalf("TopSessions: %v", err)
	}
	if len(sessions) != 4 {
		t.Fatalf("expected 4 sessions, got %d", len(sessions))
	}
	wantOrder := []int64{newest, older, python, low}
	for i, want := range wantOrder {
		if sessions[i].SessionID != want {
			t.Fatalf("position %d = session %d, want %d", i, sessions[i].SessionID, want)
		}
	}

	sessions, err = st.TopSessions(ctx, "go", 2)
	if err != nil {
		t.Fatalf("TopSessions lang: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 go sessions, got %d", len(sessions))
	}
	if sessions[0].SessionID != newest || sessions[1].SessionID != older {
		t.Fatalf("go leaderboard = %d, %d; want %d, %d", sessions[0].SessionID, sessions[1].SessionID, newest, older)
	}
	for _, s := range sessions {
		if s.Lang != "go" {
			t.Fatalf("lang filter leaked session with lang %q", s.Lang)
		}
	}
}
