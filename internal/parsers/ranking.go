// Package parsers extracts structured data from model output. Every parser
// is total: when the primary format is absent it falls back to a documented
// recovery path instead of failing.
package parsers

import (
	"regexp"
	"sort"
	"strconv"
)

var (
	rankingHeader = regexp.MustCompile(`(?im)^FINAL RANKING:\s*$`)
	numberedEntry = regexp.MustCompile(`(\d+)\.\s*Response ([A-Z])`)
	anyLabel      = regexp.MustCompile(`Response ([A-Z])`)
)

// ParseRanking extracts an ordered list of response labels ("A", "B", ...)
// from a peer evaluation. The primary path reads the numbered list after a
// FINAL RANKING: line; the fallback scans the whole text for labels,
// keeping first occurrences.
func ParseRanking(text string) []string {
	if loc := rankingHeader.FindStringIndex(text); loc != nil {
		section := text[loc[1]:]
		if entries := numberedEntry.FindAllStringSubmatch(section, -1); len(entries) > 0 {
			return orderedLabels(entries)
		}
		if labels := scanLabels(section); len(labels) > 0 {
			return labels
		}
	}
	return scanLabels(text)
}

// orderedLabels sorts numbered entries by their position number, keeping
// text order for ties, and drops duplicate labels.
func orderedLabels(entries [][]string) []string {
	type entry struct {
		position int
		label    string
	}
	parsed := make([]entry, 0, len(entries))
	for _, match := range entries {
		position, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		parsed = append(parsed, entry{position: position, label: match[2]})
	}
	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].position < parsed[j].position })

	labels := make([]string, 0, len(parsed))
	seen := map[string]bool{}
	for _, item := range parsed {
		if seen[item.label] {
			continue
		}
		seen[item.label] = true
		labels = append(labels, item.label)
	}
	return labels
}

// scanLabels collects every label mention in order of first occurrence.
func scanLabels(text string) []string {
	matches := anyLabel.FindAllStringSubmatch(text, -1)
	labels := make([]string, 0, len(matches))
	seen := map[string]bool{}
	for _, match := range matches {
		if seen[match[1]] {
			continue
		}
		seen[match[1]] = true
		labels = append(labels, match[1])
	}
	return labels
}
