// Package tui provides the Bubble Tea navigation practice interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/vimnav/internal/model"
	"github.com/verte-zerg/vimnav/internal/session"
	"github.com/verte-zerg/vimnav/internal/store"
)

// Model implements the Bubble Tea practice UI.
type Model struct {
	config      model.Config
	store       *store.Store
	sess        *session.State
	snippetName string

	width  int
	height int

	feedback string
	summary  *session.Stats
	saved    bool
}

var (
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#F0F0F0"))
	targetStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4E9A51"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	feedbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	headingStyle  = lipgloss.NewStyle().Bold(true)
)

// NewModel constructs a practice TUI model. The session is started on Init.
func NewModel(cfg model.Config, st *store.Store, sess *session.State, snippetName string) *Model {
	return &Model{
		config:      cfg,
		store:       st,
		sess:        sess,
		snippetName: snippetName,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	events := m.sess.Start(time.Now())
	m.handleEvents(events)
	if m.sess.Phase == session.PhaseFinished {
		return tea.Quit
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyRunes:
			if m.sess.Phase == session.PhaseFinished {
				return m, tea.Quit
			}
			now := time.Now()
			for _, r := range msg.Runes {
				m.handleEvents(m.sess.OnKey(string(r), now))
			}
			return m, nil
		case tea.KeyEnter:
			if m.sess.Phase == session.PhaseFinished {
				return m, tea.Quit
			}
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.sess.Phase == session.PhaseFinished {
		return m.renderSummary()
	}
	content := m.renderBuffer()
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) handleEvents(events []session.Event) {
	for _, e := range events {
		switch ev := e.(type) {
		case session.TargetReachedEvent:
			m.feedback = feedbackFor(ev)
		case session.SessionFinishedEvent:
			stats := ev.Stats
			m.summary = &stats
			m.saveSession(stats)
		}
	}
}

func feedbackFor(ev session.TargetReachedEvent) string {
	an := ev.Analysis
	if an.IsOptimal {
		return fmt.Sprintf("optimal! %s", an.Optimal.Keys())
	}
	return fmt.Sprintf("%d%% · best: %s (%s)", an.Efficiency, an.Optimal.Keys(), an.Optimal.Description)
}

func (m *Model) renderBuffer() string {
	visible := m.height - 2
	if visible < 1 {
		visible = len(m.sess.Buf)
	}
	contentWidth := m.width
	if contentWidth <= 0 {
		contentWidth = 80
	}
	lines := renderBufferLines(m.sess, contentWidth, visible)
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	done := m.sess.Index
	total := len(m.sess.Targets)
	segments := []string{fmt.Sprintf("Target %d/%d", done+1, total)}
	if pending := m.sess.Pending(); pending != "" {
		segments = append(segments, fmt.Sprintf("Pending %s", pending))
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.feedback != "" {
		footer += footerStyle.Render("  ") + feedbackStyle.Render(m.feedback)
	}
	return footer
}

func (m *Model) renderSummary() string {
	if m.summary == nil {
		return ""
	}
	s := m.summary
	var b strings.Builder
	b.WriteString(headingStyle.Render("Session complete"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Targets: %d\n", s.TargetsCompleted)
	fmt.Fprintf(&b, "Efficiency: %d%%\n", s.OverallEfficiency)
	fmt.Fprintf(&b, "Optimal paths: %d/%d\n", s.OptimalCount, s.TargetsCompleted)
	fmt.Fprintf(&b, "Keys: %d (optimal %d)\n", s.TotalKeys, s.TotalOptimalKeys)
	fmt.Fprintf(&b, "Duration: %s\n", s.Duration.Round(time.Second))
	if len(s.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Practice next"))
		b.WriteString("\n")
		for _, rec := range s.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Press any key to exit"))
	content := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m *Model) saveSession(stats session.Stats) {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true
	endedAt := time.Now()
	rec := model.SessionRecord{
		StartedAt:         m.sess.StartedAt,
		EndedAt:           endedAt,
		Lang:              m.config.Lang,
		SnippetFile:       m.snippetName,
		TargetsCompleted:  stats.TargetsCompleted,
		OptimalCount:      stats.OptimalCount,
		TotalKeys:         stats.TotalKeys,
		TotalOptimalKeys:  stats.TotalOptimalKeys,
		OverallEfficiency: stats.OverallEfficiency,
		DurationMs:        stats.Duration.Milliseconds(),
	}
	weaknesses := make([]model.WeaknessStats, 0, len(stats.WeaknessCounts))
	for kind, count := range stats.WeaknessCounts {
		weaknesses = append(weaknesses, model.WeaknessStats{Kind: string(kind), Count: count})
	}
	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, rec, weaknesses); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
