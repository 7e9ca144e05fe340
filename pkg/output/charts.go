package output

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/phishguard/phishctl/pkg/api"
)

var (
	chartTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	chartBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("57"))

	chartLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	chartEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label string
	Value int
}

// BarChart renders a titled horizontal bar chart. Bars are scaled to
// width; rendering is a pure string transformation, so repeated calls are
// idempotent by construction.
func BarChart(title string, bars []Bar, width int) string {
	var sb strings.Builder
	sb.WriteString(chartTitleStyle.Render(title))
	sb.WriteString("\n")

	if len(bars) == 0 {
		sb.WriteString(chartEmptyStyle.Render("no data"))
		sb.WriteString("\n")
		return sb.String()
	}

	// Widths count runes, not bytes; state labels carry accents.
	labelWidth := 0
	max := 0
	for _, b := range bars {
		if n := utf8.RuneCountInString(b.Label); n > labelWidth {
			labelWidth = n
		}
		if b.Value > max {
			max = b.Value
		}
	}

	barWidth := width - labelWidth - 8
	if barWidth < 8 {
		barWidth = 8
	}

	for _, b := range bars {
		n := 0
		if max > 0 {
			n = b.Value * barWidth / max
		}
		if b.Value > 0 && n == 0 {
			n = 1
		}
		pad := labelWidth - utf8.RuneCountInString(b.Label) + 1
		sb.WriteString(chartLabelStyle.Render(b.Label + strings.Repeat(" ", pad)))
		sb.WriteString(chartBarStyle.Render(strings.Repeat("█", n)))
		sb.WriteString(fmt.Sprintf(" %d\n", b.Value))
	}
	return sb.String()
}

// siteStateOrder is the canonical display order for site lifecycle states.
var siteStateOrder = []string{
	string(api.SitePending),
	string(api.SiteValidated),
	string(api.SiteFalsePositive),
	string(api.SiteTakedownSent),
	string(api.SiteDown),
}

// takedownStateOrder is the canonical display order for takedown states.
var takedownStateOrder = []string{
	string(api.TakedownPending),
	string(api.TakedownSent),
	string(api.TakedownConfirmed),
	string(api.TakedownRejected),
}

// orderedBars converts a state-count map into bars following order, with
// unlisted keys appended alphabetically so nothing is silently dropped.
func orderedBars(counts map[string]int, order []string) []Bar {
	var bars []Bar
	seen := make(map[string]bool, len(order))
	for _, key := range order {
		seen[key] = true
		if n, ok := counts[key]; ok {
			bars = append(bars, Bar{Label: key, Value: n})
		}
	}

	var rest []string
	for key := range counts {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		bars = append(bars, Bar{Label: key, Value: counts[key]})
	}
	return bars
}

// RenderSiteStats renders the four dashboard charts from one aggregate
// statistics payload: sites by state, weekly report volume, top clients
// by report count, and takedowns by state.
func RenderSiteStats(stats *api.SiteStats, width int) string {
	var sb strings.Builder

	sb.WriteString(BarChart("Sites by state", orderedBars(stats.SitesByState, siteStateOrder), width))
	sb.WriteString("\n")

	weekly := make([]Bar, 0, len(stats.WeeklyActivity))
	for _, d := range stats.WeeklyActivity {
		weekly = append(weekly, Bar{Label: d.Date, Value: d.Count})
	}
	sb.WriteString(BarChart("Reports, last 7 days", weekly, width))
	sb.WriteString("\n")

	top := make([]Bar, 0, len(stats.TopClients))
	for _, c := range stats.TopClients {
		top = append(top, Bar{Label: c.Name, Value: c.Count})
	}
	sb.WriteString(BarChart("Top clients by reports", top, width))
	sb.WriteString("\n")

	sb.WriteString(BarChart("Takedowns by state", orderedBars(stats.TakedownsByState, takedownStateOrder), width))
	return sb.String()
}

// RenderAuditStats renders the audit log statistics payload.
func RenderAuditStats(stats *api.AuditStats, width int) string {
	var sb strings.Builder

	sb.WriteString(chartTitleStyle.Render("Audit log"))
	sb.WriteString(fmt.Sprintf("\ntotal entries: %d    last 24h: %d\n\n", stats.Total, stats.Last24h))

	actions := make([]Bar, 0, len(stats.TopActions))
	for _, a := range stats.TopActions {
		actions = append(actions, Bar{Label: a.Action, Value: a.Count})
	}
	sb.WriteString(BarChart("Most frequent actions", actions, width))
	sb.WriteString("\n")

	users := make([]Bar, 0, len(stats.ActiveUsers))
	for _, u := range stats.ActiveUsers {
		users = append(users, Bar{Label: u.Name, Value: u.Count})
	}
	sb.WriteString(BarChart("Most active users", users, width))
	return sb.String()
}
