package session

import "github.com/verte-zerg/vimnav/internal/analyzer"

// EventType identifies a session event.
type EventType string

const (
	EventTargetReached   EventType = "TargetReached"
	EventSessionFinished EventType = "SessionFinished"
)

// Event is emitted by OnKey as a side effect of processing a keystroke.
// The surrounding UI subscribes to these instead of the engine calling
// back into it.
type Event interface {
	Type() EventType
}

// TargetReachedEvent is emitted when the cursor first lands exactly on
// the active target.
type TargetReachedEvent struct {
	Index    int
	Analysis analyzer.TargetAnalysis
}

func (e TargetReachedEvent) Type() EventType { return EventTargetReached }

// SessionFinishedEvent is emitted when the last target completes.
type SessionFinishedEvent struct {
	Stats Stats
}

func (e SessionFinishedEvent) Type() EventType { return EventSessionFinished }
