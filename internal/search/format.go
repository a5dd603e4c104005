package search

import (
	"fmt"
	"strings"
)

// Unavailable is returned to the model when the provider cannot serve a
// query; the model is expected to continue without search.
const Unavailable = "Web search is currently unavailable. Answer using your existing knowledge and say so when a claim would need verification."

// FormatResults renders results as numbered blocks for model consumption.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No search results found."
	}
	blocks := make([]string, 0, len(results))
	for i, result := range results {
		blocks = append(blocks, fmt.Sprintf("[%d] %s\n%s\n%s", i+1, result.Title, result.URL, result.Content))
	}
	return strings.Join(blocks, "\n\n")
}
