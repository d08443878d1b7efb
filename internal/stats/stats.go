// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/vimnav/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes targets per minute and the optimal-path rate
// for a session.
func SessionMetrics(targets, optimalCount int, durationMs int64) (tpm, optimalRate float64) {
	if durationMs > 0 {
		minutes := float64(durationMs) / 60000.0
		tpm = float64(targets) / minutes
	}
	if targets > 0 {
		optimalRate = float64(optimalCount) / float64(targets)
	}
	return tpm, optimalRate
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary table for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalEff, totalTPM, totalOpt float64
	bestEff := 0
	for _, s := range sessions {
		tpm, optRate := SessionMetrics(s.Targets, s.OptimalCount, s.DurationMs)
		totalEff += float64(s.Efficiency)
		totalTPM += tpm
		totalOpt += optRate
		if s.Efficiency > bestEff {
			bestEff = s.Efficiency
		}
	}
	count := float64(len(sessions))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", len(sessions)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Efficiency: %.1f%%\n", totalEff/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Efficiency: %d%%\n", bestEff); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Targets/min: %.2f\n", totalTPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Optimal Rate: %.1f%%\n", (totalOpt/count)*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderCurves prints learning curves for efficiency and pace.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int) error {
	return RenderCurvesWithSize(w, sessions, window, 0, 10, false)
}

// RenderCurvesWithSize prints learning curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	effs := make([]float64, len(sessions))
	paces := make([]float64, len(sessions))
	for i, s := range sessions {
		tpm, _ := SessionMetrics(s.Targets, s.OptimalCount, s.DurationMs)
		effs[i] = float64(s.Efficiency)
		paces[i] = tpm
	}
	effs = MovingAverage(effs, window)
	paces = MovingAverage(paces, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Learning Curves", []Series{
		{Name: "Efficiency", Values: effs},
		{Name: "Targets/min", Values: paces},
	}, width, height, useColor)
}

// RenderWeaknessTable prints aggregated weakness counts, worst first.
func RenderWeaknessTable(w io.Writer, aggs []model.WeaknessAggregate, recommend func(string) string) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No weaknesses recorded.")
		return err
	}
	rows := make([]model.WeaknessAggregate, len(aggs))
	copy(rows, aggs)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Kind < rows[j].Kind
		}
		return rows[i].Count > rows[j].Count
	})

	if _, err := fmt.Fprintln(w, "Weaknesses (Windowed)"); err != nil {
		return err
	}

	cols := []column{
		{title: "Weakness"},
		{title: "Count", right: true},
		{title: "Suggestion"},
	}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		suggestion := ""
		if recommend != nil {
			suggestion = recommend(r.Kind)
		}
		tableRows = append(tableRows, []string{
			r.Kind,
			fmt.Sprintf("%d", r.Count),
			suggestion,
		})
	}
	for _, line := range renderColumns(cols, tableRows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
