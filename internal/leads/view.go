package leads

import "fmt"

// Tab selects which subset of the current results is shown and exported
type Tab string

const (
	TabAll       Tab = "all"
	TabNoWebsite Tab = "no-website"
)

// ParseTab validates a tab name
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabAll, TabNoWebsite:
		return Tab(s), nil
	default:
		return "", fmt.Errorf("unknown tab %q (expected %q or %q)", s, TabAll, TabNoWebsite)
	}
}

// Filter returns the records visible under tab, in source order.
// The input slice is never modified.
func Filter(set []Business, tab Tab) []Business {
	if tab != TabNoWebsite {
		out := make([]Business, len(set))
		copy(out, set)
		return out
	}

	out := make([]Business, 0, len(set))
	for _, b := range set {
		if !HasWebsite(b) {
			out = append(out, b)
		}
	}
	return out
}

// NoWebsiteCount counts records without a website
func NoWebsiteCount(set []Business) int {
	n := 0
	for _, b := range set {
		if !HasWebsite(b) {
			n++
		}
	}
	return n
}

// AutoTab picks the tab to show right after a search completes
func AutoTab(set []Business) Tab {
	if NoWebsiteCount(set) > 0 {
		return TabNoWebsite
	}
	return TabAll
}

// Stats summarizes a result set
type Stats struct {
	Total       int `json:"total"`
	NoWebsite   int `json:"noWebsite"`
	WithWebsite int `json:"withWebsite"`
}

func ComputeStats(set []Business) Stats {
	missing := NoWebsiteCount(set)
	return Stats{
		Total:       len(set),
		NoWebsite:   missing,
		WithWebsite: len(set) - missing,
	}
}
