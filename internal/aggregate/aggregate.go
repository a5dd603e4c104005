// Package aggregate computes mean-position rankings from peer evaluations.
package aggregate

import (
	"sort"

	"council/internal/council"
)

// Calculate folds parsed peer rankings into one entry per ranked model.
// Positions are 1-based within each evaluation; labels missing from an
// evaluation contribute no vote there, and labels never ranked anywhere
// receive no entry. Entries sort by mean position ascending, then vote
// count descending, then model ascending. Means are exact (unrounded);
// presentation layers round for display.
func Calculate(records []council.RankingRecord, labelToModel map[string]string) []council.AggregateEntry {
	positions := map[string][]int{}
	for _, record := range records {
		for position, label := range record.ParsedOrder {
			model, ok := labelToModel[label]
			if !ok {
				continue
			}
			positions[model] = append(positions[model], position+1)
		}
	}

	entries := make([]council.AggregateEntry, 0, len(positions))
	for model, ranks := range positions {
		sum := 0
		for _, rank := range ranks {
			sum += rank
		}
		entries = append(entries, council.AggregateEntry{
			Model:        model,
			MeanPosition: float64(sum) / float64(len(ranks)),
			VoteCount:    len(ranks),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].MeanPosition != entries[j].MeanPosition {
			return entries[i].MeanPosition < entries[j].MeanPosition
		}
		if entries[i].VoteCount != entries[j].VoteCount {
			return entries[i].VoteCount > entries[j].VoteCount
		}
		return entries[i].Model < entries[j].Model
	})
	return entries
}
