package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phishguard/phishctl/pkg/api"
)

func analystModel() Model {
	return New(&api.MockClient{}, api.Identity{ID: 2, Username: "lmendoza", Role: "analista"}, "http://localhost:8000")
}

func adminModel() Model {
	return New(&api.MockClient{}, api.Identity{ID: 1, Username: "atorres", Role: api.RoleAdmin}, "http://localhost:8000")
}

func keyPress(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestGuardedTabRefusedForAnalyst(t *testing.T) {
	m := analystModel()

	m = keyPress(m, "5") // Users
	if m.activeTab != tabOverview {
		t.Errorf("activeTab = %v, want overview to stay active", m.activeTab)
	}
	if !strings.Contains(m.notice, api.RoleAdmin) {
		t.Errorf("expected role notice after refused transition, got: %q", m.notice)
	}

	// A permitted transition clears the notice.
	m = keyPress(m, "2")
	if m.activeTab != tabSites {
		t.Errorf("activeTab = %v, want sites", m.activeTab)
	}
	if m.notice != "" {
		t.Errorf("expected notice cleared, got: %q", m.notice)
	}
}

func TestGuardedTabAllowedForAdmin(t *testing.T) {
	m := adminModel()
	for key, want := range map[string]tab{"5": tabUsers, "6": tabClients, "7": tabAudit} {
		got := keyPress(m, key)
		if got.activeTab != want {
			t.Errorf("key %s: activeTab = %v, want %v", key, got.activeTab, want)
		}
		if got.notice != "" {
			t.Errorf("key %s: unexpected notice %q", key, got.notice)
		}
	}
}

func TestCycleSkipsGuardedTabsForAnalyst(t *testing.T) {
	m := analystModel()
	m.activeTab = tabWhitelist

	m = keyPress(m, "tab")
	if m.activeTab != tabOverview {
		t.Errorf("activeTab = %v, want cycle to wrap past guarded tabs to overview", m.activeTab)
	}

	m = keyPress(m, "shift+tab")
	if m.activeTab != tabWhitelist {
		t.Errorf("activeTab = %v, want backward cycle to land on whitelist", m.activeTab)
	}
}

func TestCycleVisitsAllTabsForAdmin(t *testing.T) {
	m := adminModel()
	seen := map[tab]bool{m.activeTab: true}
	for i := 0; i < int(tabCount)-1; i++ {
		m = keyPress(m, "tab")
		if seen[m.activeTab] {
			t.Fatalf("tab %v visited twice before covering all tabs", m.activeTab)
		}
		seen[m.activeTab] = true
	}
	if len(seen) != int(tabCount) {
		t.Errorf("visited %d tabs, want %d", len(seen), tabCount)
	}
}

func TestSectionErrorsIsolated(t *testing.T) {
	m := adminModel()
	m.width = 80
	m.height = 30

	updated, _ := m.Update(dataMsg{
		sites: []api.Site{{ID: 1, URL: "http://evil.example"}},
		errs:  map[tab]error{tabTakedowns: errors.New("boom")},
	})
	m = updated.(Model)

	m.activeTab = tabSites
	if view := m.renderActiveTab(); !strings.Contains(view, "evil.example") {
		t.Errorf("sites tab must render despite takedowns failure, got: %s", view)
	}

	m.activeTab = tabTakedowns
	if view := m.renderActiveTab(); !strings.Contains(view, "boom") {
		t.Errorf("failing tab must surface its own error, got: %s", view)
	}
}

func TestFailedRefreshKeepsPriorContent(t *testing.T) {
	m := analystModel()
	m.width = 80
	m.height = 30
	m.activeTab = tabSites

	updated, _ := m.Update(dataMsg{sites: []api.Site{{ID: 1, URL: "http://evil.example"}}})
	m = updated.(Model)

	updated, _ = m.Update(dataMsg{errs: map[tab]error{tabSites: errors.New("boom")}})
	m = updated.(Model)

	if view := m.renderActiveTab(); !strings.Contains(view, "evil.example") {
		t.Errorf("sites tab must keep prior rows after a failed refresh, got: %s", view)
	}
	if status := m.renderStatus(); !strings.Contains(status, "boom") {
		t.Errorf("status bar must surface the refresh failure, got: %s", status)
	}
}

func TestFetchDataSkipsAdminSectionsForAnalyst(t *testing.T) {
	msg := fetchData(&api.MockClient{}, false)()
	data, ok := msg.(dataMsg)
	if !ok {
		t.Fatalf("fetchData returned %T, want dataMsg", msg)
	}
	if len(data.sites) == 0 {
		t.Error("expected sites to be loaded")
	}
	if data.users != nil || data.clients != nil || data.audit != nil {
		t.Error("admin sections must not be fetched for a non-admin role")
	}
}

func TestViewShowsLockedTabs(t *testing.T) {
	m := analystModel()
	m.width = 100
	m.height = 30
	view := m.View()
	for _, name := range tabNames {
		if !strings.Contains(view, name) {
			t.Errorf("tab bar missing %q", name)
		}
	}
	if !strings.Contains(view, "lmendoza") {
		t.Errorf("status bar missing identity, got: %s", view)
	}
}
