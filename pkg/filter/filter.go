// Package filter selects history entries by text.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"pastelink/pkg/history"
)

type FilterMode int

const (
	FilterModeNone FilterMode = iota
	FilterModeExact
	FilterModeContains
	FilterModeRegex
	FilterModeFuzzy
)

// ParseMode maps a --match flag value to a FilterMode.
func ParseMode(s string) (FilterMode, error) {
	switch strings.ToLower(s) {
	case "", "contains":
		return FilterModeContains, nil
	case "exact":
		return FilterModeExact, nil
	case "regex":
		return FilterModeRegex, nil
	case "fuzzy":
		return FilterModeFuzzy, nil
	case "none":
		return FilterModeNone, nil
	}
	return FilterModeNone, fmt.Errorf("unknown match mode '%s' (use contains, exact, regex or fuzzy)", s)
}

type StringFilter struct {
	Pattern string
	Mode    FilterMode
	regex   *regexp.Regexp
}

func NewStringFilter(pattern string, mode FilterMode) (*StringFilter, error) {
	f := &StringFilter{
		Pattern: pattern,
		Mode:    mode,
	}

	if mode == FilterModeRegex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern '%s': %w", pattern, err)
		}
		f.regex = re
	}

	return f, nil
}

func (f *StringFilter) Match(s string) bool {
	switch f.Mode {
	case FilterModeExact:
		return strings.EqualFold(s, f.Pattern)
	case FilterModeContains:
		return strings.Contains(strings.ToLower(s), strings.ToLower(f.Pattern))
	case FilterModeRegex:
		return f.regex != nil && f.regex.MatchString(s)
	case FilterModeFuzzy:
		return FuzzyMatch(f.Pattern, s)
	default:
		return true
	}
}

// FuzzyMatch reports whether the runes of pattern appear in text in order,
// ignoring case.
func FuzzyMatch(pattern, text string) bool {
	if pattern == "" {
		return true
	}

	want := []rune(strings.ToLower(pattern))
	i := 0
	for _, r := range strings.ToLower(text) {
		if r == want[i] {
			i++
			if i == len(want) {
				return true
			}
		}
	}
	return false
}

// EntryFilter selects history entries whose plaintext, markdown or source
// matches Text, optionally restricted to one rewrite path.
type EntryFilter struct {
	Text *StringFilter
	Path string
}

func (f *EntryFilter) Matches(e history.Entry) bool {
	if f.Path != "" && !strings.EqualFold(f.Path, e.Path) {
		return false
	}
	if f.Text == nil {
		return true
	}
	return f.Text.Match(e.Plain) || f.Text.Match(e.Markdown) || f.Text.Match(e.Source)
}

// Apply returns the entries that match, preserving order.
func (f *EntryFilter) Apply(entries []history.Entry) []history.Entry {
	out := make([]history.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
