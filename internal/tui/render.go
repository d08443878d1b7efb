// Package tui provides the Bubble Tea navigation practice interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/vimnav/internal/buffer"
	"github.com/verte-zerg/vimnav/internal/session"
)

type styledCell struct {
	s     string
	width int
}

// renderBufferLines renders a window of the practice buffer with the
// cursor, the active target, and completed targets highlighted.
func renderBufferLines(sess *session.State, width, visible int) []string {
	buf := sess.Buf
	start, end := viewWindow(sess.Cursor.Line, buf.LineCount(), visible)

	var active *buffer.Position
	if tgt := sess.Current(); tgt != nil {
		p := tgt.Pos
		active = &p
	}
	done := completedPositions(sess)

	lines := make([]string, 0, end-start)
	for li := start; li < end; li++ {
		lines = append(lines, renderLine(sess, li, width, active, done))
	}
	return lines
}

// viewWindow centers the window on the cursor line and clamps it to
// the buffer.
func viewWindow(cursorLine, lineCount, visible int) (int, int) {
	if visible <= 0 || visible >= lineCount {
		return 0, lineCount
	}
	start := cursorLine - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > lineCount {
		start = lineCount - visible
	}
	return start, start + visible
}

func renderLine(sess *session.State, li, width int, active *buffer.Position, done map[buffer.Position]bool) string {
	runes := []rune(sess.Buf.Line(li))
	if len(runes) == 0 {
		// The cursor can rest on an empty line.
		if sess.Cursor.Line == li && sess.Cursor.Col == 0 {
			return cursorStyle.Render(" ")
		}
		return ""
	}

	cells := make([]styledCell, 0, len(runes))
	lineWidth := 0
	for ci, r := range runes {
		pos := buffer.Position{Line: li, Col: ci}
		style := textStyle
		switch {
		case pos == sess.Cursor:
			style = cursorStyle
		case active != nil && pos == *active:
			style = targetStyle
		case done[pos]:
			style = doneStyle
		}
		w := runewidth.RuneWidth(r)
		if width > 0 && lineWidth+w > width {
			break
		}
		cells = append(cells, styledCell{s: style.Render(string(r)), width: w})
		lineWidth += w
	}

	var b strings.Builder
	for _, cell := range cells {
		b.WriteString(cell.s)
	}
	return b.String()
}

func completedPositions(sess *session.State) map[buffer.Position]bool {
	done := make(map[buffer.Position]bool)
	for i := range sess.Targets {
		if sess.Targets[i].Completed {
			done[sess.Targets[i].Pos] = true
		}
	}
	return done
}
