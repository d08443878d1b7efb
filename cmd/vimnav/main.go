// Package main provides the CLI entrypoint for vimnav.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/vimnav/internal/analyzer"
	"github.com/verte-zerg/vimnav/internal/buffer"
	"github.com/verte-zerg/vimnav/internal/config"
	"github.com/verte-zerg/vimnav/internal/model"
	"github.com/verte-zerg/vimnav/internal/session"
	"github.com/verte-zerg/vimnav/internal/snippets"
	"github.com/verte-zerg/vimnav/internal/stats"
	"github.com/verte-zerg/vimnav/internal/statsui"
	"github.com/verte-zerg/vimnav/internal/store"
	"github.com/verte-zerg/vimnav/internal/target"
	"github.com/verte-zerg/vimnav/internal/tui"
)

const (
	defaultLang        = "python"
	defaultTargets     = 10
	defaultWeakTop     = 3
	defaultWeakFactor  = 6.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 20
	defaultTopLimit    = 10
)

var (
	practiceLang       string
	practiceTargets    int
	practiceFile       string
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int
	practiceMinDist    int
	practiceNearDist   int

	statsLang        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	topLang  string
	topLimit int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vimnav",
		Short:         "TUI vim navigation trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "snippet language")
	rootCmd.Flags().IntVar(&practiceTargets, "targets", defaultTargets, "targets per session")
	rootCmd.Flags().StringVar(&practiceFile, "file", "", "practice on a custom file instead of a built-in snippet")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias target placement toward weak motions")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weaknesses to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak motions")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weaknesses")
	rootCmd.Flags().IntVar(&practiceMinDist, "min-distance", 0, "minimum spacing between targets (0 = default)")
	rootCmd.Flags().IntVar(&practiceNearDist, "near-distance", 0, "spacing excluded in weighted mode (0 = default)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newTopCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyIntConfig(cmd, "targets", &practiceTargets, fileCfg.Practice.Targets)
	applyStringConfig(cmd, "file", &practiceFile, fileCfg.Practice.File)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)
	applyIntConfig(cmd, "min-distance", &practiceMinDist, fileCfg.Practice.MinDistance)
	applyIntConfig(cmd, "near-distance", &practiceNearDist, fileCfg.Practice.NearDistance)

	cfg := model.Config{
		Lang:         practiceLang,
		Targets:      practiceTargets,
		File:         practiceFile,
		FocusWeak:    practiceFocusWeak,
		WeakTop:      practiceWeakTop,
		WeakFactor:   practiceWeakFactor,
		WeakWindow:   practiceWeakWindow,
		MinDistance:  practiceMinDist,
		NearDistance: practiceNearDist,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	text, snippetName, err := loadSnippet(cfg)
	if err != nil {
		return err
	}
	buf := buffer.New(text)

	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	var weights target.Weights
	if cfg.FocusWeak {
		aggs, err := st.GetWeaknesses(context.Background(), cfg.WeakWindow, cfg.Lang)
		if err != nil {
			logErrf("failed to load weaknesses: %v\n", err)
		} else if len(aggs) == 0 {
			logErrln("no stats available for weakness focus yet; using uniform targets")
		} else {
			weights = stats.SelectWeakKinds(aggs, cfg.WeakTop, cfg.WeakFactor)
		}
	}

	tuning := target.DefaultTuning()
	if cfg.MinDistance > 0 {
		tuning.MinDistance = cfg.MinDistance
	}
	if cfg.NearDistance > 0 {
		tuning.NearDistance = cfg.NearDistance
	}

	start := buf.Clamp(buffer.Position{Line: 0, Col: 0})
	gen := target.New(tuning)
	targets := gen.Generate(buf, cfg.Targets, start, weights)
	if len(targets) == 0 {
		return fmt.Errorf("snippet is too small to place targets")
	}

	sess := session.NewState(buf, targets, start, nil)
	m := tui.NewModel(cfg, st, sess, snippetName)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadSnippet(cfg model.Config) (text, name string, err error) {
	if cfg.File != "" {
		path := cfg.File
		if _, serr := os.Stat(path); serr != nil && !filepath.IsAbs(path) {
			// Bare names resolve against the user snippet directory.
			candidate := filepath.Join(config.DefaultSnippetDir(), path)
			if _, serr := os.Stat(candidate); serr == nil {
				path = candidate
			}
		}
		text, err = snippets.LoadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to load snippet file: %w", err)
		}
		return text, filepath.Base(path), nil
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	text, err = snippets.Random(cfg.Lang, rnd)
	if err != nil {
		return "", "", err
	}
	return text, "", nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List built-in snippet languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	for _, lang := range snippets.Languages() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print stats to stdout instead of the TUI")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Lang:        statsLang,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return renderPlainStats(st, cfg)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func renderPlainStats(st *store.Store, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := os.Stdout
	if err := stats.RenderSummary(out, report.Sessions); err != nil {
		return err
	}
	recommend := func(kind string) string {
		return session.Recommendation(analyzer.WeaknessKind(kind))
	}
	if err := stats.RenderWeaknessTable(out, report.WeakAggsWindow, recommend); err != nil {
		return err
	}
	return stats.RenderCurves(out, report.Sessions, cfg.CurveWindow)
}

func newTopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show best sessions",
		Args:  cobra.NoArgs,
		RunE:  runTopCmd,
	}
	cmd.Flags().StringVar(&topLang, "lang", "", "language filter")
	cmd.Flags().IntVar(&topLimit, "limit", defaultTopLimit, "number of sessions to show")
	return cmd
}

func runTopCmd(_ *cobra.Command, _ []string) error {
	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	sessions, err := st.TopSessions(context.Background(), topLang, topLimit)
	if err != nil {
		return fmt.Errorf("failed to load top sessions: %w", err)
	}
	return stats.RenderTopSessions(os.Stdout, sessions)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# vimnav configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q          # Snippet language
# targets = %d            # Targets per session
# file = ""               # Practice on a custom file
# focus-weak = false      # Bias target placement toward weak motions
# weak-top = %d            # Number of weaknesses to focus on
# weak-factor = %.1f      # Weight factor for weak motions
# weak-window = %d        # Number of recent sessions to compute weaknesses
# min-distance = 5        # Minimum spacing between targets
# near-distance = 3       # Spacing excluded in weighted mode
`,
		defaultLang,
		defaultTargets,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Targets <= 0 {
		return fmt.Errorf("--targets must be > 0")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	if cfg.MinDistance < 0 {
		return fmt.Errorf("--min-distance must be >= 0")
	}
	if cfg.NearDistance < 0 {
		return fmt.Errorf("--near-distance must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
