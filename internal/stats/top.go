// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/vimnav/internal/model"
)

// RenderTopSessions prints a leaderboard of the best sessions.
func RenderTopSessions(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Top Sessions"); err != nil {
		return err
	}
	cols := []column{
		{title: "#", right: true},
		{title: "Date"},
		{title: "Lang"},
		{title: "Efficiency", right: true},
		{title: "Optimal", right: true},
		{title: "Targets", right: true},
		{title: "Keys", right: true},
	}
	rows := make([][]string, 0, len(sessions))
	for i, s := range sessions {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			s.EndedAt.Format("2006-01-02 15:04"),
			s.Lang,
			fmt.Sprintf("%d%%", s.Efficiency),
			fmt.Sprintf("%d/%d", s.OptimalCount, s.Targets),
			fmt.Sprintf("%d", s.Targets),
			fmt.Sprintf("%d", s.TotalKeys),
		})
	}
	for _, line := range renderColumns(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
