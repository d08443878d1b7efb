// Package session drives a practice run: it parses the keystroke stream,
// advances the cursor through the generated targets and folds arrival
// analyses into session statistics.
package session

import (
	"strconv"
	"time"

	"github.com/verte-zerg/vimnav/internal/analyzer"
	"github.com/verte-zerg/vimnav/internal/buffer"
	"github.com/verte-zerg/vimnav/internal/motion"
	"github.com/verte-zerg/vimnav/internal/target"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseFinished
)

// State is the full runtime state of one practice session. The UI layer
// owns a State and feeds it keystrokes; nothing here is global.
type State struct {
	Buf     buffer.Buffer
	Targets []target.Target
	Index   int
	Cursor  buffer.Position
	Phase   Phase

	StartedAt time.Time

	agg         *Aggregator
	legStart    buffer.Position
	targetStart time.Time
	targetKeys  []string

	pendingCount string
	pendingFind  rune
	pendingG     bool
}

// NewState builds an idle session over buf with the given targets. The
// cursor starts at start, which is also the "from" of the first target's
// optimal solution.
func NewState(buf buffer.Buffer, targets []target.Target, start buffer.Position, thresholds Thresholds) *State {
	start = buf.Clamp(start)
	return &State{
		Buf:      buf,
		Targets:  targets,
		Cursor:   start,
		Phase:    PhaseIdle,
		agg:      NewAggregator(thresholds),
		legStart: start,
	}
}

// Start moves the session to the playing phase. A session with no
// targets finishes immediately.
func (s *State) Start(now time.Time) []Event {
	if s.Phase != PhaseIdle {
		return nil
	}
	s.StartedAt = now
	s.targetStart = now
	if len(s.Targets) == 0 {
		s.Phase = PhaseFinished
		return []Event{SessionFinishedEvent{Stats: s.Summarize(now)}}
	}
	s.Phase = PhasePlaying
	return nil
}

// Current returns the active target, or nil when none is.
func (s *State) Current() *target.Target {
	if s.Index < 0 || s.Index >= len(s.Targets) {
		return nil
	}
	return &s.Targets[s.Index]
}

// Pending renders the in-flight command prefix (count digits, an
// unfinished find, a leading g) for display.
func (s *State) Pending() string {
	out := s.pendingCount
	if s.pendingG {
		out += "g"
	}
	if s.pendingFind != 0 {
		out += string(s.pendingFind)
	}
	return out
}

// Summarize builds the session statistics as of now.
func (s *State) Summarize(now time.Time) Stats {
	return s.agg.Summarize(now.Sub(s.StartedAt))
}

// OnKey processes one keystroke synchronously and returns any events it
// produced. Keystrokes outside the playing phase are ignored.
func (s *State) OnKey(key string, now time.Time) []Event {
	if s.Phase != PhasePlaying {
		return nil
	}
	s.targetKeys = append(s.targetKeys, key)

	runes := []rune(key)
	if len(runes) != 1 {
		s.clearPending()
		return nil
	}
	r := runes[0]

	if s.pendingFind != 0 {
		kind := findKind(s.pendingFind)
		s.pendingFind = 0
		return s.move(motion.Motion{Kind: kind, Char: r, Count: s.takeCount()}, now)
	}

	if s.pendingG {
		s.pendingG = false
		switch r {
		case 'g':
			s.takeCount()
			return s.move(motion.Motion{Kind: motion.DocumentStart}, now)
		case 'e':
			return s.move(motion.Motion{Kind: motion.WordEndBackward, Count: s.takeCount()}, now)
		}
		s.clearPending()
		return nil
	}

	if r >= '1' && r <= '9' || (r == '0' && s.pendingCount != "") {
		s.pendingCount += string(r)
		return nil
	}

	count := func() int { return s.takeCount() }
	var m motion.Motion
	switch r {
	case 'h':
		m = motion.Motion{Kind: motion.Left, Count: count()}
	case 'j':
		m = motion.Motion{Kind: motion.Down, Count: count()}
	case 'k':
		m = motion.Motion{Kind: motion.Up, Count: count()}
	case 'l':
		m = motion.Motion{Kind: motion.Right, Count: count()}
	case 'w':
		m = motion.Motion{Kind: motion.WordForward, Count: count()}
	case 'b':
		m = motion.Motion{Kind: motion.WordBackward, Count: count()}
	case 'e':
		m = motion.Motion{Kind: motion.WordEnd, Count: count()}
	case 'W':
		m = motion.Motion{Kind: motion.WORDForward, Count: count()}
	case 'B':
		m = motion.Motion{Kind: motion.WORDBackward, Count: count()}
	case 'E':
		m = motion.Motion{Kind: motion.WORDEnd, Count: count()}
	case '0':
		m = motion.Motion{Kind: motion.LineStart}
	case '^', '_':
		m = motion.Motion{Kind: motion.LineFirstNonBlank}
	case '$':
		m = motion.Motion{Kind: motion.LineEnd}
	case '+':
		m = motion.Motion{Kind: motion.NextLineFirstNonBlank, Count: count()}
	case '-':
		m = motion.Motion{Kind: motion.PrevLineFirstNonBlank, Count: count()}
	case '}':
		m = motion.Motion{Kind: motion.ParagraphForward, Count: count()}
	case '{':
		m = motion.Motion{Kind: motion.ParagraphBackward, Count: count()}
	case 'G':
		if n := count(); n > 0 {
			m = motion.Motion{Kind: motion.GoToLine, Line: n}
		} else {
			m = motion.Motion{Kind: motion.DocumentEnd}
		}
	case '%':
		m = motion.Motion{Kind: motion.MatchingBracket}
	case 'f', 'F', 't', 'T':
		s.pendingFind = r
		return nil
	case 'g':
		s.pendingG = true
		return nil
	default:
		s.clearPending()
		return nil
	}
	return s.move(m, now)
}

func findKind(r rune) motion.Kind {
	switch r {
	case 'f':
		return motion.FindCharForward
	case 'F':
		return motion.FindCharBackward
	case 't':
		return motion.TillCharForward
	}
	return motion.TillCharBackward
}

// takeCount consumes the accumulated count prefix, returning 0 when none
// was typed.
func (s *State) takeCount() int {
	if s.pendingCount == "" {
		return 0
	}
	n, err := strconv.Atoi(s.pendingCount)
	s.pendingCount = ""
	if err != nil {
		return 0
	}
	return n
}

func (s *State) clearPending() {
	s.pendingCount = ""
	s.pendingFind = 0
	s.pendingG = false
}

// move applies the motion and completes the active target when the
// cursor lands exactly on it.
func (s *State) move(m motion.Motion, now time.Time) []Event {
	s.Cursor = motion.Apply(s.Cursor, m, s.Buf)

	tgt := s.Current()
	if tgt == nil || s.Cursor != tgt.Pos {
		return nil
	}

	keys := make([]string, len(s.targetKeys))
	copy(keys, s.targetKeys)
	elapsed := now.Sub(s.targetStart).Seconds()
	an := analyzer.Analyze(s.legStart, tgt.Pos, s.Buf, keys, elapsed)
	tgt.Complete(an)
	s.agg.RecordCompletion(tgt, an)

	events := []Event{TargetReachedEvent{Index: s.Index, Analysis: an}}

	s.Index++
	s.legStart = tgt.Pos
	s.targetKeys = nil
	s.targetStart = now
	s.clearPending()

	if s.Index >= len(s.Targets) {
		s.Phase = PhaseFinished
		events = append(events, SessionFinishedEvent{Stats: s.Summarize(now)})
	}
	return events
}
