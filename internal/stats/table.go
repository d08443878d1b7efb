// Package stats contains statistics calculations and reporting.
package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one plain-text report column. Numeric columns are
// right-aligned so counts and percentages line up.
type column struct {
	title string
	right bool
}

// renderColumns lays out rows under the column titles with a dashed
// rule in between. Widths are terminal cell widths, not rune counts,
// so wide characters in snippet names stay aligned.
func renderColumns(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range rows {
		for i := range cols {
			if i >= len(row) {
				continue
			}
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	titles := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = alignCell(c.title, widths[i], c.right)
		rules[i] = strings.Repeat("-", widths[i])
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, strings.TrimRight(strings.Join(titles, "  "), " "))
	lines = append(lines, strings.Join(rules, "  "))
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = alignCell(cell, widths[i], c.right)
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	return lines
}

func alignCell(value string, width int, right bool) string {
	pad := width - runewidth.StringWidth(value)
	if pad <= 0 {
		return value
	}
	if right {
		return strings.Repeat(" ", pad) + value
	}
	return value + strings.Repeat(" ", pad)
}
