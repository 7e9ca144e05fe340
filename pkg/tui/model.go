// Package tui provides the interactive terminal dashboard for phishctl.
// It is built on the bubbletea/lipgloss stack and renders up to seven
// tabs: Overview, Sites, Takedowns, Whitelist, Users, Clients, and Audit.
// The last three are reserved for the administrador role. Data is
// refreshed every 5 seconds through the typed API client.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phishguard/phishctl/pkg/api"
	"github.com/phishguard/phishctl/pkg/output"
	"github.com/phishguard/phishctl/pkg/session"
)

// ---------------------------------------------------------------------------
// Shared styles
// ---------------------------------------------------------------------------

var (
	// titleStyle renders the application title bar.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("124")).
			Padding(0, 1)

	// activeTabStyle renders the currently selected tab label.
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("124")).
			Padding(0, 2)

	// inactiveTabStyle renders unselected tab labels.
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	// lockedTabStyle renders admin-only tab labels for non-admin users.
	lockedTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Strikethrough(true).
			Padding(0, 2)

	// headerCellStyle is used for table column headers.
	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			PaddingRight(1)

	// rowStyle is used for odd-numbered table rows.
	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingRight(1)

	// altRowStyle is used for even-numbered table rows (zebra striping).
	altRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Background(lipgloss.Color("236")).
			PaddingRight(1)

	// dimStyle is used for "no data" messages.
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	// statusBarStyle renders the bottom status bar.
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(1)

	// noticeStyle renders permission notices in the status bar.
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true).
			PaddingLeft(1)

	// errorStyle renders error messages.
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true).
			PaddingLeft(1)
)

// ---------------------------------------------------------------------------
// Tab type
// ---------------------------------------------------------------------------

// tab identifies the currently active dashboard tab.
type tab int

const (
	tabOverview tab = iota
	tabSites
	tabTakedowns
	tabWhitelist
	tabUsers
	tabClients
	tabAudit
	tabCount // sentinel, must stay last
)

var tabNames = [tabCount]string{"Overview", "Sites", "Takedowns", "Whitelist", "Users", "Clients", "Audit"}

// guarded reports whether t is reserved for the administrador role.
func guarded(t tab) bool {
	return t == tabUsers || t == tabClients || t == tabAudit
}

// ---------------------------------------------------------------------------
// Tea messages
// ---------------------------------------------------------------------------

// tickMsg is sent every refreshInterval to trigger a data refresh.
type tickMsg time.Time

// dataMsg carries a freshly fetched dataset. Each section loads
// independently: a failing section leaves its error in errs and the
// rest of the dashboard intact.
type dataMsg struct {
	stats     *api.SiteStats
	sites     []api.Site
	takedowns []api.Takedown
	whitelist []api.WhitelistEntry
	users     []api.User
	clients   []api.Client
	audit     []api.AuditEntry
	errs      map[tab]error
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

const refreshInterval = 5 * time.Second

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	client    api.APIClient
	identity  api.Identity
	admin     bool
	serverURL string

	activeTab tab
	data      dataMsg
	notice    string
	width     int
	height    int
	loading   bool
	lastFetch time.Time
}

// New returns a Model for the given authenticated session. The identity
// decides whether the Users, Clients, and Audit tabs are reachable.
func New(client api.APIClient, identity api.Identity, serverURL string) Model {
	return Model{
		client:    client,
		identity:  identity,
		admin:     session.CanManage(identity),
		serverURL: serverURL,
		loading:   true,
	}
}

// ActiveTab exposes the current tab name shown in the tab bar.
func (m Model) ActiveTab() string {
	return tabNames[m.activeTab]
}

// Init starts the periodic tick and issues the first data fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), fetchData(m.client, m.admin))
}

// tick schedules a tickMsg after refreshInterval.
func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// selectTab attempts a transition to t. Guarded tabs are refused for
// non-admin users with a status-bar notice; exactly one tab stays
// active either way.
func (m Model) selectTab(t tab) Model {
	if guarded(t) && !m.admin {
		m.notice = fmt.Sprintf("The %s section requires the %s role.", tabNames[t], api.RoleAdmin)
		return m
	}
	m.activeTab = t
	m.notice = ""
	return m
}

// cycleTab moves delta tabs forward or backward, skipping tabs the
// current role cannot open.
func (m Model) cycleTab(delta tab) Model {
	t := m.activeTab
	for i := 0; i < int(tabCount); i++ {
		t = (t + delta + tabCount) % tabCount
		if !guarded(t) || m.admin {
			m.activeTab = t
			m.notice = ""
			return m
		}
	}
	return m
}

// Update processes messages and returns an updated model plus any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "right", "l":
			return m.cycleTab(1), nil
		case "shift+tab", "left", "h":
			return m.cycleTab(-1), nil
		case "1", "2", "3", "4", "5", "6", "7":
			return m.selectTab(tab(msg.String()[0] - '1')), nil
		case "r":
			// Manual refresh
			m.loading = true
			return m, fetchData(m.client, m.admin)
		}
		return m, nil

	case tickMsg:
		m.loading = true
		return m, tea.Batch(tick(), fetchData(m.client, m.admin))

	case dataMsg:
		m.loading = false
		m.data = mergeData(m.data, msg)
		m.lastFetch = time.Now()
		return m, nil
	}

	return m, nil
}

// mergeData folds a fresh dataset into the previous one. Sections that
// failed to load keep their prior content; the error is carried for the
// status bar.
func mergeData(prev, next dataMsg) dataMsg {
	if next.errs[tabOverview] != nil {
		next.stats = prev.stats
	}
	if next.errs[tabSites] != nil {
		next.sites = prev.sites
	}
	if next.errs[tabTakedowns] != nil {
		next.takedowns = prev.takedowns
	}
	if next.errs[tabWhitelist] != nil {
		next.whitelist = prev.whitelist
	}
	if next.errs[tabUsers] != nil {
		next.users = prev.users
	}
	if next.errs[tabClients] != nil {
		next.clients = prev.clients
	}
	if next.errs[tabAudit] != nil {
		next.audit = prev.audit
	}
	return next
}

// View renders the entire dashboard to a string.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading…"
	}

	var sb strings.Builder

	// --- Title bar ---
	sb.WriteString(titleStyle.Render("  PhishGuard Dashboard  "))
	sb.WriteString("\n")

	// --- Tab bar ---
	var tabParts []string
	for t := tabOverview; t < tabCount; t++ {
		label := fmt.Sprintf(" %d: %s ", int(t)+1, tabNames[t])
		switch {
		case t == m.activeTab:
			tabParts = append(tabParts, activeTabStyle.Render(label))
		case guarded(t) && !m.admin:
			tabParts = append(tabParts, lockedTabStyle.Render(label))
		default:
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
	}
	sb.WriteString(strings.Join(tabParts, ""))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", m.width))
	sb.WriteString("\n")

	// --- Content area ---
	contentHeight := m.height - 5 // title(1) + tabs(1) + divider(1) + status(2)
	if contentHeight < 1 {
		contentHeight = 1
	}
	sb.WriteString(clipLines(m.renderActiveTab(), contentHeight))
	sb.WriteString("\n")

	// --- Status bar ---
	sb.WriteString(strings.Repeat("─", m.width))
	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())

	return sb.String()
}

// renderActiveTab renders the content of the currently selected tab.
// A tab whose loader failed keeps showing its prior content, with the
// error in the status bar; only a tab that never loaded shows the error
// in the content area.
func (m Model) renderActiveTab() string {
	w := m.width - 2 // leave a small margin
	if err := m.data.errs[m.activeTab]; err != nil && m.tabEmpty(m.activeTab) {
		return errorStyle.Render(fmt.Sprintf("Failed to load %s: %v", tabNames[m.activeTab], err))
	}
	switch m.activeTab {
	case tabOverview:
		if m.data.stats == nil {
			return dimStyle.Render("  Waiting for statistics…")
		}
		return output.RenderSiteStats(m.data.stats, w/2)
	case tabSites:
		return renderSites(m.data.sites, w)
	case tabTakedowns:
		return renderTakedowns(m.data.takedowns, w)
	case tabWhitelist:
		return renderWhitelist(m.data.whitelist, w)
	case tabUsers:
		return renderUsers(m.data.users, w)
	case tabClients:
		return renderClients(m.data.clients, w)
	case tabAudit:
		return renderAudit(m.data.audit, w)
	default:
		return ""
	}
}

// tabEmpty reports whether t has no loaded content to fall back on.
func (m Model) tabEmpty(t tab) bool {
	switch t {
	case tabOverview:
		return m.data.stats == nil
	case tabSites:
		return len(m.data.sites) == 0
	case tabTakedowns:
		return len(m.data.takedowns) == 0
	case tabWhitelist:
		return len(m.data.whitelist) == 0
	case tabUsers:
		return len(m.data.users) == 0
	case tabClients:
		return len(m.data.clients) == 0
	case tabAudit:
		return len(m.data.audit) == 0
	default:
		return true
	}
}

// renderStatus renders the bottom status bar line.
func (m Model) renderStatus() string {
	if m.notice != "" {
		return noticeStyle.Render(m.notice)
	}
	if err := m.data.errs[m.activeTab]; err != nil {
		return errorStyle.Render(fmt.Sprintf("Refresh failed: %v", err))
	}

	parts := []string{
		fmt.Sprintf("%s (%s)", m.identity.Username, m.identity.Role),
		fmt.Sprintf("server: %s", m.serverURL),
	}
	if !m.lastFetch.IsZero() {
		parts = append(parts, fmt.Sprintf("last refresh: %s", m.lastFetch.Format("15:04:05")))
	}
	if m.loading {
		parts = append(parts, "refreshing…")
	}
	parts = append(parts, "q: quit  tab: next tab  r: refresh")

	return statusBarStyle.Render(strings.Join(parts, "  |  "))
}

// clipLines limits the string s to at most maxLines newline-delimited lines.
func clipLines(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines {
		return s
	}
	return strings.Join(lines[:maxLines], "\n")
}

// ---------------------------------------------------------------------------
// Data fetching
// ---------------------------------------------------------------------------

// fetchData loads every section the role can see. Sections fail
// independently so one broken endpoint never blanks the dashboard.
func fetchData(client api.APIClient, admin bool) tea.Cmd {
	return func() tea.Msg {
		msg := dataMsg{errs: make(map[tab]error)}

		var err error
		if msg.stats, err = client.SiteStatistics(); err != nil {
			msg.errs[tabOverview] = err
		}
		if msg.sites, err = client.ListSites(); err != nil {
			msg.errs[tabSites] = err
		}
		if msg.takedowns, err = client.ListTakedowns(); err != nil {
			msg.errs[tabTakedowns] = err
		}
		if msg.whitelist, err = client.ListWhitelist(); err != nil {
			msg.errs[tabWhitelist] = err
		}

		if !admin {
			return msg
		}
		if msg.users, err = client.ListUsers(); err != nil {
			msg.errs[tabUsers] = err
		}
		if msg.clients, err = client.ListClients(); err != nil {
			msg.errs[tabClients] = err
		}
		if msg.audit, err = client.ListAudit(api.AuditFilter{Limit: 50}); err != nil {
			msg.errs[tabAudit] = err
		}
		return msg
	}
}
