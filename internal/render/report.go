package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/devos-project/devosctl/internal/strutil"
	"github.com/devos-project/devosctl/internal/validator"
)

// Renderer formats validation reports.
type Renderer struct {
	pretty bool
}

// New creates a renderer. Pretty mode uses color and a styled summary
// table; plain mode emits line-oriented output for scripts and logs.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	tableStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	cellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// Report formats a full validation report.
func (r *Renderer) Report(report *validator.Report) string {
	var sb strings.Builder

	if r.pretty {
		sb.WriteString(headerStyle.Render("DevOS Configuration Validation"))
		sb.WriteString("\n")
		sb.WriteString(r.summaryTable(report))
		sb.WriteString("\n")
	} else {
		fmt.Fprintf(&sb, "devosctl: %d checks, %d findings (%s)\n",
			len(report.ChecksRun), len(report.Findings), report.Root)
	}

	if len(report.Findings) > 0 {
		sb.WriteString(r.findings(report))
	}

	sb.WriteString("\n")
	sb.WriteString(r.status(report))
	sb.WriteString("\n")

	return sb.String()
}

// Findings formats only the violations, for --quiet mode.
func (r *Renderer) Findings(report *validator.Report) string {
	if report.OK() {
		return ""
	}
	return r.findings(report) + "\n" + r.status(report) + "\n"
}

// summaryTable renders per-group check and finding totals.
func (r *Renderer) summaryTable(report *validator.Report) string {
	groups, checkTotals := groupTotals(report)

	findingTotals := make(map[string]int)
	for _, f := range report.Findings {
		findingTotals[checkGroup(f.Check)]++
	}

	var rows []string
	for _, group := range groups {
		icon := color.GreenString("✓")
		note := ""
		if n := findingTotals[group]; n > 0 {
			icon = color.RedString("✗")
			note = color.RedString("%d finding(s)", n)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			cellStyle.Width(3).Render(icon),
			cellStyle.Width(14).Render(group),
			cellStyle.Width(11).Render(fmt.Sprintf("%d checks", checkTotals[group])),
			note,
		)
		rows = append(rows, row)
	}

	return tableStyle.Render(strings.Join(rows, "\n"))
}

func (r *Renderer) findings(report *validator.Report) string {
	var sb strings.Builder

	order, grouped := report.ByCheck()
	for _, check := range order {
		if r.pretty {
			fmt.Fprintf(&sb, "\n%s\n", color.CyanString(check))
		} else {
			fmt.Fprintf(&sb, "%s:\n", check)
		}
		for _, f := range grouped[check] {
			msg := strutil.TruncateRunes(f.Message, 160)
			if r.pretty {
				fmt.Fprintf(&sb, "  %s [%s] %s\n", color.RedString(KindIcon(string(f.Kind))), f.Kind, msg)
			} else {
				fmt.Fprintf(&sb, "  [%s] %s\n", f.Kind, msg)
			}
			if f.File != "" {
				fmt.Fprintf(&sb, "      file: %s\n", f.File)
			}
			if f.Subject != "" {
				fmt.Fprintf(&sb, "      subject: %s\n", f.Subject)
			}
		}
	}

	return sb.String()
}

func (r *Renderer) status(report *validator.Report) string {
	if report.OK() {
		if r.pretty {
			return color.GreenString("Status: PASSED") + fmt.Sprintf(" (%d checks in %s)", len(report.ChecksRun), report.Duration.Round(time.Millisecond))
		}
		return fmt.Sprintf("Status: PASSED (%d checks)", len(report.ChecksRun))
	}

	counts := report.Counts()
	detail := fmt.Sprintf("%d parse, %d schema, %d reference",
		counts[validator.KindParse], counts[validator.KindSchema], counts[validator.KindReference])
	if r.pretty {
		return color.RedString("Status: FAILED") + fmt.Sprintf(" (%s)", detail)
	}
	return fmt.Sprintf("Status: FAILED (%s)", detail)
}

// groupTotals derives group order and per-group check counts from the
// checks that actually ran; group is the prefix before the slash.
func groupTotals(report *validator.Report) ([]string, map[string]int) {
	totals := make(map[string]int)
	var order []string
	for _, name := range report.ChecksRun {
		group := checkGroup(name)
		if totals[group] == 0 {
			order = append(order, group)
		}
		totals[group]++
	}
	return order, totals
}

func checkGroup(name string) string {
	if i := strings.Index(name, "/"); i > 0 {
		return name[:i]
	}
	return name
}
