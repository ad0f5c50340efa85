package filter

import (
	"strings"
	"testing"

	"pastelink/pkg/history"
)

func TestNewStringFilter(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		mode      FilterMode
		wantErr   bool
		errString string
	}{
		{
			name:    "valid contains filter",
			pattern: "example",
			mode:    FilterModeContains,
		},
		{
			name:    "valid regex filter",
			pattern: `^\[.*\]\(https://`,
			mode:    FilterModeRegex,
		},
		{
			name:      "invalid regex filter",
			pattern:   "[invalid(",
			mode:      FilterModeRegex,
			wantErr:   true,
			errString: "invalid regex pattern",
		},
		{
			name:    "none mode",
			pattern: "",
			mode:    FilterModeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewStringFilter(tt.pattern, tt.mode)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewStringFilter() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errString) {
					t.Errorf("error = %q, want containing %q", err.Error(), tt.errString)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStringFilter() unexpected error: %v", err)
			}
			if filter.Pattern != tt.pattern || filter.Mode != tt.mode {
				t.Errorf("NewStringFilter() = %+v", filter)
			}
		})
	}
}

func TestStringFilter_Match(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		mode    FilterMode
		input   string
		want    bool
	}{
		{"exact ignores case", "Example", FilterModeExact, "example", true},
		{"exact rejects substring", "Example", FilterModeExact, "Example site", false},
		{"contains", "docs", FilterModeContains, "[Read the DOCS](https://docs.test)", true},
		{"contains miss", "blog", FilterModeContains, "[docs](https://docs.test)", false},
		{"regex", `\(https://example\.test/?\)$`, FilterModeRegex, "[Example](https://example.test/)", true},
		{"regex miss", `^http`, FilterModeRegex, "[Example](https://example.test/)", false},
		{"fuzzy", "exmpl", FilterModeFuzzy, "Example", true},
		{"fuzzy out of order", "lpx", FilterModeFuzzy, "Example", false},
		{"none matches everything", "", FilterModeNone, "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewStringFilter(tt.pattern, tt.mode)
			if err != nil {
				t.Fatalf("NewStringFilter() error = %v", err)
			}
			if got := f.Match(tt.input); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		pattern string
		text    string
		want    bool
	}{
		{"", "", true},
		{"", "abc", true},
		{"a", "", false},
		{"gh", "GitHub", true},
		{"gthb", "github.com", true},
		{"héo", "hélло", false},
		{"hé", "Héllo", true},
		{"abcd", "abc", false},
	}

	for _, tt := range tests {
		if got := FuzzyMatch(tt.pattern, tt.text); got != tt.want {
			t.Errorf("FuzzyMatch(%q, %q) = %v, want %v", tt.pattern, tt.text, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    FilterMode
		wantErr bool
	}{
		{"", FilterModeContains, false},
		{"contains", FilterModeContains, false},
		{"EXACT", FilterModeExact, false},
		{"regex", FilterModeRegex, false},
		{"fuzzy", FilterModeFuzzy, false},
		{"glob", FilterModeNone, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEntryFilter_Apply(t *testing.T) {
	entries := []history.Entry{
		{ID: "1", Source: "clipboard", Path: "link-preview", Plain: "Check this out", Markdown: "[Example](https://example.test/)"},
		{ID: "2", Source: "edge.yaml", Path: "anchors", Plain: "See A and B", Markdown: "See [A](u1) and [B](u2)"},
		{ID: "3", Source: "clipboard", Path: "anchors", Plain: "docs", Markdown: "[docs](https://docs.test)"},
	}

	contains := func(p string) *StringFilter {
		f, _ := NewStringFilter(p, FilterModeContains)
		return f
	}

	tests := []struct {
		name    string
		filter  EntryFilter
		wantIDs []string
	}{
		{"no criteria", EntryFilter{}, []string{"1", "2", "3"}},
		{"by path", EntryFilter{Path: "anchors"}, []string{"2", "3"}},
		{"by markdown", EntryFilter{Text: contains("example.test")}, []string{"1"}},
		{"by plaintext", EntryFilter{Text: contains("see a")}, []string{"2"}},
		{"by source", EntryFilter{Text: contains("edge.yaml")}, []string{"2"}},
		{"path and text", EntryFilter{Path: "anchors", Text: contains("https")}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(entries)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Apply() returned %d entries, want %d", len(got), len(tt.wantIDs))
			}
			for i, e := range got {
				if e.ID != tt.wantIDs[i] {
					t.Errorf("Apply()[%d].ID = %q, want %q", i, e.ID, tt.wantIDs[i])
				}
			}
		})
	}
}
