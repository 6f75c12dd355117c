package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/raphaelgruber/casepairs/internal/metrics"
	"github.com/raphaelgruber/casepairs/internal/service"
)

// Theme holds the color scheme for console output.
type Theme struct {
	Success lipgloss.Color
	Warning lipgloss.Color
	Hint    lipgloss.Color

	// plain disables styling, e.g. when output is piped.
	plain bool
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Success: lipgloss.Color("#00D787"), // green
	Warning: lipgloss.Color("#FFAF00"), // amber
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

// themeFor returns the default theme, unstyled unless w is a terminal.
func themeFor(w io.Writer) Theme {
	t := defaultTheme
	f, ok := w.(*os.File)
	t.plain = !ok || !term.IsTerminal(int(f.Fd()))
	return t
}

func (t Theme) render(style lipgloss.Style, s string) string {
	if t.plain {
		return s
	}
	return style.Render(s)
}

func (t Theme) success(s string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Success).Bold(true), s)
}

func (t Theme) warning(s string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Warning), s)
}

func (t Theme) hint(s string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Hint).Italic(true), s)
}

// printStats writes the per-run breakdown shown with --verbose.
func printStats(w io.Writer, theme Theme, r *service.BuildResult) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Judgement dirs:      %d\n", r.Stats.JudgementDirs)
	if r.Stats.MissingSummary > 0 {
		fmt.Fprintln(w, theme.warning(fmt.Sprintf("  Missing summary dir: %d", r.Stats.MissingSummary)))
	}
	fmt.Fprintf(w, "  Files matched:       %d\n", r.Stats.FilesMatched)
	fmt.Fprintf(w, "  Files unmatched:     %d\n", r.Stats.FilesUnmatched)
	if r.Stats.LossyFiles > 0 {
		fmt.Fprintln(w, theme.warning(fmt.Sprintf("  Invalid UTF-8 files: %d", r.Stats.LossyFiles)))
	}
	fmt.Fprintf(w, "  Dropped (missing):   %d\n", r.Report.DroppedMissing)
	fmt.Fprintf(w, "  Dropped (blank):     %d\n", r.Report.DroppedBlank)

	for _, stage := range []struct {
		name string
		snap *metrics.StageSnapshot
	}{
		{metrics.OpCollect, r.Metrics.Collect},
		{metrics.OpRead, r.Metrics.Read},
		{metrics.OpClean, r.Metrics.Clean},
		{metrics.OpWrite, r.Metrics.Write},
	} {
		if stage.snap == nil {
			continue
		}
		fmt.Fprintln(w, theme.hint(fmt.Sprintf("  %-8s %4d× %6d ms total", stage.name, stage.snap.Count, stage.snap.TotalTimeMs)))
	}
}
