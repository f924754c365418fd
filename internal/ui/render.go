// Package ui renders measurement results for the terminal.
package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"perflab/internal/clock"
	"perflab/internal/reptest"
	"perflab/internal/store"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// colorize applies a style only when the terminal supports color, so piped
// output stays clean.
func colorize(style lipgloss.Style, s string) string {
	if termenv.EnvColorProfile() == termenv.Ascii {
		return s
	}
	return style.Render(s)
}

const (
	megabyte = 1 << 20
	gigabyte = 1 << 30
	kilobyte = 1 << 10
)

// FormatMetrics renders one trial (or an average of trials) the way the
// repetition tester reports them: elapsed time, then throughput and
// page-fault cost when bytes were counted.
func FormatMetrics(m reptest.Metrics) string {
	var sb strings.Builder

	secs := clock.ToDuration(m.Ticks).Seconds()
	fmt.Fprintf(&sb, "%.4fms", secs*1_000)

	if m.Bytes > 0 {
		fmt.Fprintf(&sb, " %.3fmb", float64(m.Bytes)/megabyte)
		if secs > 0 {
			fmt.Fprintf(&sb, " %.2fgb/s", float64(m.Bytes)/gigabyte/secs)
		}
	}

	if m.PageFaults > 0 {
		fmt.Fprintf(&sb, " PF: %d (%.4fk/fault)",
			m.PageFaults, float64(m.Bytes)/float64(m.PageFaults)/kilobyte)
	}

	return sb.String()
}

// RenderSummary renders a finished repetition test as Min/Max/Avg lines under
// a title.
func RenderSummary(title string, sum reptest.Summary) string {
	var sb strings.Builder

	sb.WriteString(colorize(titleStyle, title))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s\n", colorize(labelStyle, "Min:"), FormatMetrics(sum.Min))
	fmt.Fprintf(&sb, "%s %s\n", colorize(labelStyle, "Max:"), FormatMetrics(sum.Max))
	fmt.Fprintf(&sb, "%s %s\n", colorize(labelStyle, "Avg:"), FormatMetrics(sum.Avg()))

	return sb.String()
}

// RenderRegression renders the warning shown when a run is slower than the
// stored baseline by more than the configured threshold.
func RenderRegression(kind string, baseline, current, dropPct float64) string {
	msg := fmt.Sprintf("regression: %s dropped %.1f%% (%.2f -> %.2f MB/s)",
		kind, dropPct, baseline, current)
	return colorize(warnStyle, msg)
}

// RenderRuns renders stored runs as an aligned table, newest first.
func RenderRuns(runs []store.Run) string {
	if len(runs) == 0 {
		return "no runs recorded\n"
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, colorize(headerStyle, "ID\tKIND\tLABEL\tMB/S\tELAPSED\tTRIALS\tFAULTS\tCREATED"))
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.4fms\t%d\t%d\t%s\n",
			r.ID, r.Kind, r.Label, r.ThroughputMBps,
			float64(r.ElapsedNs)/1e6, r.Trials, r.PageFaults,
			r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()

	return sb.String()
}
