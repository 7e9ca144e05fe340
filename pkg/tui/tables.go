package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phishguard/phishctl/pkg/api"
)

// stateColor returns a lipgloss foreground colour for a site or
// takedown state label.
func stateColor(state string) lipgloss.Color {
	switch state {
	case string(api.SitePending): // shared with api.TakedownPending
		return lipgloss.Color("3") // yellow
	case string(api.SiteValidated), string(api.SiteTakedownSent), string(api.TakedownSent):
		return lipgloss.Color("6") // cyan
	case string(api.SiteDown), string(api.TakedownConfirmed):
		return lipgloss.Color("2") // green
	case string(api.SiteFalsePositive), string(api.TakedownRejected):
		return lipgloss.Color("8") // grey
	default:
		return lipgloss.Color("252")
	}
}

// column pairs a header label with a fractional width of the terminal.
type column struct {
	label    string
	fraction float64
}

// renderTable renders a zebra-striped table. cells returns the row's
// cell values; the state column index (or -1) gets its own colour.
func renderTable(cols []column, rowCount int, stateCol int, width int, cells func(i int) []string) string {
	widths := make([]int, len(cols))
	headerParts := make([]string, len(cols))
	for i, c := range cols {
		widths[i] = colWidth(width, c.fraction)
		headerParts[i] = headerCellStyle.Width(widths[i]).Render(c.label)
	}

	rows := []string{strings.Join(headerParts, "")}
	for i := 0; i < rowCount; i++ {
		style := rowStyle
		if i%2 == 0 {
			style = altRowStyle
		}
		values := cells(i)
		parts := make([]string, len(values))
		for j, v := range values {
			if j == stateCol {
				parts[j] = lipgloss.NewStyle().
					Width(widths[j]).
					Foreground(stateColor(v)).
					Render(truncate(v, widths[j]-1))
				continue
			}
			parts[j] = style.Width(widths[j]).Render(truncate(v, widths[j]-1))
		}
		rows = append(rows, strings.Join(parts, ""))
	}
	return strings.Join(rows, "\n")
}

func renderSites(sites []api.Site, width int) string {
	if len(sites) == 0 {
		return dimStyle.Render("  No sites reported.")
	}
	cols := []column{
		{"ID", 0.06}, {"URL", 0.34}, {"CLIENT", 0.18}, {"STATE", 0.16}, {"REPORTED", 0.16},
	}
	return renderTable(cols, len(sites), 3, width, func(i int) []string {
		s := sites[i]
		return []string{
			strconv.Itoa(s.ID),
			s.URL,
			s.ClientName,
			string(s.State),
			s.ReportedAt.Format("2006-01-02 15:04"),
		}
	})
}

func renderTakedowns(takedowns []api.Takedown, width int) string {
	if len(takedowns) == 0 {
		return dimStyle.Render("  No takedown notices.")
	}
	cols := []column{
		{"ID", 0.06}, {"SITE", 0.30}, {"RECIPIENT", 0.24}, {"STATE", 0.14}, {"SENT", 0.16},
	}
	return renderTable(cols, len(takedowns), 3, width, func(i int) []string {
		t := takedowns[i]
		sent := "-"
		if t.SentAt != nil {
			sent = t.SentAt.Format("2006-01-02 15:04")
		}
		recipient := t.Recipient
		if n := api.ExtraRecipientCount(&t); n > 0 {
			recipient = fmt.Sprintf("%s +%d", t.Recipient, n)
		}
		return []string{
			strconv.Itoa(t.ID),
			t.SiteURL,
			recipient,
			string(t.State),
			sent,
		}
	})
}

func renderWhitelist(entries []api.WhitelistEntry, width int) string {
	if len(entries) == 0 {
		return dimStyle.Render("  Whitelist is empty.")
	}
	cols := []column{
		{"ID", 0.06}, {"URL", 0.36}, {"CLIENT", 0.20}, {"DESCRIPTION", 0.28},
	}
	return renderTable(cols, len(entries), -1, width, func(i int) []string {
		e := entries[i]
		return []string{strconv.Itoa(e.ID), e.URL, e.ClientName, e.Description}
	})
}

func renderUsers(users []api.User, width int) string {
	if len(users) == 0 {
		return dimStyle.Render("  No users.")
	}
	cols := []column{
		{"ID", 0.06}, {"USERNAME", 0.20}, {"NAME", 0.26}, {"ROLE", 0.18}, {"ACTIVE", 0.10},
	}
	return renderTable(cols, len(users), -1, width, func(i int) []string {
		u := users[i]
		active := "no"
		if u.Active {
			active = "yes"
		}
		return []string{strconv.Itoa(u.ID), u.Username, u.FullName, u.Role, active}
	})
}

func renderClients(clients []api.Client, width int) string {
	if len(clients) == 0 {
		return dimStyle.Render("  No clients.")
	}
	cols := []column{
		{"ID", 0.06}, {"NAME", 0.26}, {"DOMAIN", 0.26}, {"CONTACT", 0.26},
	}
	return renderTable(cols, len(clients), -1, width, func(i int) []string {
		c := clients[i]
		return []string{strconv.Itoa(c.ID), c.Name, c.Domain, c.ContactEmail}
	})
}

func renderAudit(entries []api.AuditEntry, width int) string {
	if len(entries) == 0 {
		return dimStyle.Render("  No audit entries.")
	}
	cols := []column{
		{"WHEN", 0.16}, {"USER", 0.16}, {"ACTION", 0.18}, {"DETAIL", 0.40},
	}
	return renderTable(cols, len(entries), -1, width, func(i int) []string {
		e := entries[i]
		return []string{
			e.Date.Format("01-02 15:04"),
			e.UserName,
			e.Action,
			e.Detail,
		}
	})
}

// colWidth converts a fractional width into an integer column width, leaving a
// small gutter between columns.
func colWidth(totalWidth int, fraction float64) int {
	w := int(float64(totalWidth) * fraction)
	if w < 8 {
		w = 8
	}
	return w
}

// truncate shortens s to maxLen runes, appending "…" if truncation occurred.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return fmt.Sprintf("%s…", string(runes[:maxLen-1]))
}
