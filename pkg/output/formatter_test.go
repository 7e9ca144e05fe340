package output

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

type row struct {
	ID    int
	URL   string
	Added time.Time
	Sent  *time.Time
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter("json").(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter for \"json\"")
	}
	if _, ok := NewFormatter("YAML").(*YAMLFormatter); !ok {
		t.Error("expected YAMLFormatter for \"YAML\"")
	}
	if _, ok := NewFormatter("").(*TableFormatter); !ok {
		t.Error("expected TableFormatter as default")
	}
}

func TestTableFormatterEmptySlice(t *testing.T) {
	f := &TableFormatter{}
	if got := f.Format([]row{}); got != "No resources found.\n" {
		t.Errorf("Format(empty) = %q", got)
	}
}

func TestTableFormatterSlice(t *testing.T) {
	sent := time.Date(2026, 3, 8, 10, 30, 0, 0, time.UTC)
	f := &TableFormatter{}
	out := f.Format([]row{
		{ID: 1, URL: "http://a.example", Added: sent, Sent: &sent},
		{ID: 2, URL: "http://b.example"},
	})

	if !strings.Contains(out, "ID") || !strings.Contains(out, "URL") {
		t.Errorf("expected upper-case headers, got: %s", out)
	}
	if !strings.Contains(out, "2026-03-08 10:30") {
		t.Errorf("expected compact timestamp, got: %s", out)
	}
	// Nil pointer and zero time both render as a dash.
	if strings.Count(out, "-") < 2 {
		t.Errorf("expected dashes for empty values, got: %s", out)
	}
}

func TestTableFormatterTruncatesLongCells(t *testing.T) {
	long := strings.Repeat("x", 200)
	f := &TableFormatter{}
	out := f.Format([]row{{ID: 1, URL: long}})
	if strings.Contains(out, long) {
		t.Error("expected long cell to be truncated")
	}
	if !strings.Contains(out, "…") {
		t.Errorf("expected truncation marker, got: %s", out)
	}
}

func TestTableFormatterTruncatesOnRunes(t *testing.T) {
	// Accented text must stay valid UTF-8 after truncation.
	long := strings.Repeat("ñ", 200)
	f := &TableFormatter{}
	out := f.Format([]row{{ID: 1, URL: long}})
	if !utf8.ValidString(out) {
		t.Errorf("truncated output is not valid UTF-8: %q", out)
	}
	if !strings.Contains(out, "…") {
		t.Errorf("expected truncation marker, got: %s", out)
	}
}

func TestTableFormatterFlattensNewlines(t *testing.T) {
	f := &TableFormatter{}
	out := f.Format([]row{{ID: 1, URL: "line1\nline2"}})
	if !strings.Contains(out, "line1 line2") {
		t.Errorf("expected newlines flattened, got: %s", out)
	}
}

func TestJSONFormatter(t *testing.T) {
	f := &JSONFormatter{}
	out := f.Format(map[string]int{"pendiente": 2})
	if !strings.Contains(out, `"pendiente": 2`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}

func TestYAMLFormatter(t *testing.T) {
	f := &YAMLFormatter{}
	out := f.Format(map[string]int{"pendiente": 2})
	if !strings.Contains(out, "pendiente: 2") {
		t.Errorf("unexpected YAML output: %s", out)
	}
}
