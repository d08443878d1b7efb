package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/vimnav/internal/analyzer"
	"github.com/verte-zerg/vimnav/internal/model"
	"github.com/verte-zerg/vimnav/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "vimnav.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		rec := model.SessionRecord{
			StartedAt:         start,
			EndedAt:           end,
			Lang:              "go",
			TargetsCompleted:  10,
			OptimalCount:      6,
			TotalKeys:         40,
			TotalOptimalKeys:  25,
			OverallEfficiency: 70 + i,
			DurationMs:        end.Sub(start).Milliseconds(),
		}
		weaknesses := []model.WeaknessStats{
			{Kind: string(analyzer.MissingWordMotions), Count: 3},
			{Kind: string(analyzer.MissingFindMotions), Count: 1},
		}
		id, err := st.InsertSession(ctx, rec, weaknesses)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Lang:        "go",
		Last:        2,
		CurveWindow: 2,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
	if len(report.WindowSessionIDs) != 2 {
		t.Fatalf("expected 2 window session ids, got %d", len(report.WindowSessionIDs))
	}
	if len(report.WeakAggsAll) != 2 {
		t.Fatalf("expected 2 weakness aggregates, got %d", len(report.WeakAggsAll))
	}
	for _, agg := range report.WeakAggsAll {
		if agg.Kind == string(analyzer.MissingWordMotions) && agg.Count != 6 {
			t.Fatalf("expected summed count 6 for word motions, got %d", agg.Count)
		}
	}
}
