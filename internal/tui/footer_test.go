package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/vimnav/internal/buffer"
)

func TestRenderFooterFormats(t *testing.T) {
	sess := newTestSession(t, []string{"abcdef"}, buffer.Position{Line: 0, Col: 0}, buffer.Position{Line: 0, Col: 4})
	sess.Start(time.Unix(0, 0))
	sess.OnKey("2", time.Unix(1, 0))

	m := &Model{sess: sess, feedback: "optimal! w"}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Target 1/1", "Pending 2", "optimal! w"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
