package output

import (
	"strings"
	"testing"

	"github.com/phishguard/phishctl/pkg/api"
)

func TestBarChartScalesToWidth(t *testing.T) {
	out := BarChart("States", []Bar{
		{Label: "pendiente", Value: 4},
		{Label: "validado", Value: 2},
		{Label: "sitio_caido", Value: 0},
	}, 40)

	if !strings.Contains(out, "States") {
		t.Errorf("expected title in output, got: %s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title + 3 bars, got %d lines: %s", len(lines), out)
	}
	// The largest value owns the longest bar; zero values get none.
	if strings.Count(lines[1], "█") <= strings.Count(lines[2], "█") {
		t.Errorf("expected pendiente bar longer than validado: %s", out)
	}
	if strings.Count(lines[3], "█") != 0 {
		t.Errorf("expected no bar for zero value: %s", out)
	}
}

func TestBarChartAlignsAccentedLabels(t *testing.T) {
	out := BarChart("Actions", []Bar{
		{Label: "acción", Value: 2},
		{Label: "login", Value: 2},
	}, 40)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title + 2 bars, got %d lines: %s", len(lines), out)
	}
	// Label padding counts runes, so both bars start in the same column.
	if a, b := runeIndex(lines[1], '█'), runeIndex(lines[2], '█'); a != b {
		t.Errorf("bars misaligned: column %d vs %d in %s", a, b, out)
	}
}

func runeIndex(s string, r rune) int {
	for i, c := range []rune(s) {
		if c == r {
			return i
		}
	}
	return -1
}

func TestBarChartEmpty(t *testing.T) {
	out := BarChart("States", nil, 40)
	if !strings.Contains(out, "no data") {
		t.Errorf("expected empty-chart message, got: %s", out)
	}
}

func TestBarChartIdempotent(t *testing.T) {
	bars := []Bar{{Label: "pendiente", Value: 3}}
	if BarChart("States", bars, 40) != BarChart("States", bars, 40) {
		t.Error("identical input must render identically")
	}
}

func TestOrderedBars(t *testing.T) {
	counts := map[string]int{
		string(api.SiteDown):      1,
		string(api.SitePending):   3,
		string(api.SiteValidated): 2,
		"zz_custom":               5,
		"aa_custom":               4,
	}
	bars := orderedBars(counts, siteStateOrder)

	got := make([]string, len(bars))
	for i, b := range bars {
		got[i] = b.Label
	}
	want := []string{
		string(api.SitePending),
		string(api.SiteValidated),
		string(api.SiteDown),
		"aa_custom",
		"zz_custom",
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("orderedBars order = %v, want %v", got, want)
	}
}

func TestRenderSiteStats(t *testing.T) {
	stats := &api.SiteStats{
		SitesByState:     map[string]int{string(api.SitePending): 1},
		TopClients:       []api.NamedCount{{Name: "Banco Andino", Count: 2}},
		WeeklyActivity:   []api.DatedCount{{Date: "2026-03-09", Count: 2}},
		TakedownsByState: map[string]int{string(api.TakedownSent): 1},
	}
	out := RenderSiteStats(stats, 40)
	for _, want := range []string{"Sites by state", "Reports, last 7 days", "Top clients by reports", "Takedowns by state", "Banco Andino"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderSiteStats missing %q: %s", want, out)
		}
	}
}

func TestRenderAuditStats(t *testing.T) {
	stats := &api.AuditStats{
		Total:       128,
		Last24h:     7,
		TopActions:  []api.ActionCount{{Action: "LOGIN", Count: 45}},
		ActiveUsers: []api.UserActionCount{{Name: "Ana Torres", Count: 70}},
	}
	out := RenderAuditStats(stats, 40)
	for _, want := range []string{"total entries: 128", "last 24h: 7", "LOGIN", "Ana Torres"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderAuditStats missing %q: %s", want, out)
		}
	}
}
