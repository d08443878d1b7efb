package stats

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestRenderColumnsAlignment(t *testing.T) {
	cols := []column{
		{title: "Weakness"},
		{title: "Count", right: true},
	}
	rows := [][]string{
		{"missing-find-motions", "4"},
		{"slow-basic-movement", "12"},
	}

	lines := renderColumns(cols, rows)
	if len(lines) != 4 {
		t.Fatalf("expected title, rule and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Weakness              Count" {
		t.Fatalf("unexpected title line: %q", lines[0])
	}
	if lines[1] != "--------------------  -----" {
		t.Fatalf("unexpected rule line: %q", lines[1])
	}
	if lines[2] != "missing-find-motions      4" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
	if lines[3] != "slow-basic-movement      12" {
		t.Fatalf("unexpected row line: %q", lines[3])
	}
}

func TestRenderColumnsCellWidths(t *testing.T) {
	cols := []column{
		{title: "File"},
		{title: "Keys", right: true},
	}
	rows := [][]string{
		{"日本.go", "7"},
		{"ab.go", "12"},
	}

	lines := renderColumns(cols, rows)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	// Wide runes must not break the right edge.
	if w1, w2 := runewidth.StringWidth(lines[2]), runewidth.StringWidth(lines[3]); w1 != w2 {
		t.Fatalf("rows misaligned: %d vs %d cells (%q / %q)", w1, w2, lines[2], lines[3])
	}
	if !strings.HasSuffix(lines[2], "7") || !strings.HasSuffix(lines[3], "12") {
		t.Fatalf("numeric column not right-aligned: %q / %q", lines[2], lines[3])
	}
}

func TestRenderColumnsEmpty(t *testing.T) {
	if lines := renderColumns(nil, nil); lines != nil {
		t.Fatalf("expected nil for no columns, got %v", lines)
	}
}
