// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Lang         string
	Targets      int
	File         string
	FocusWeak    bool
	WeakTop      int
	WeakWindow   int
	WeakFactor   float64
	MinDistance  int
	NearDistance int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lang        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionRecord captures a completed navigation session.
type SessionRecord struct {
	StartedAt         time.Time
	EndedAt           time.Time
	Lang              string
	SnippetFile       string
	TargetsCompleted  int
	OptimalCount      int
	TotalKeys         int
	TotalOptimalKeys  int
	OverallEfficiency int
	DurationMs        int64
}

// WeaknessStats stores per-weakness counts for a session.
type WeaknessStats struct {
	Kind  string
	Count int
}

// WeaknessAggregate aggregates weakness counts across sessions.
type WeaknessAggregate struct {
	Kind  string
	Count int
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID    int64
	EndedAt      time.Time
	Lang         string
	Targets      int
	OptimalCount int
	Efficiency   int
	TotalKeys    int
	DurationMs   int64
}
