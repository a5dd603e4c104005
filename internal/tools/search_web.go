package tools

import (
	"context"
	"errors"

	"council/internal/gateway"
	"council/internal/search"
)

// SearchWebName is the only tool the council declares.
const SearchWebName = "search_web"

// Searcher runs web searches for the search_web tool.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// NewSearchWeb builds the search_web tool backed by the given searcher.
// Provider failures never surface as errors; the model receives a truthful
// unavailability message and proceeds without search.
func NewSearchWeb(searcher Searcher) Tool {
	return Tool{
		Definition: gateway.Tool{
			Name:        SearchWebName,
			Description: "Search the web for current information. Use this when you need up-to-date information, recent events, current statistics, or facts you're unsure about.",
			Parameters: schemaPointer(gateway.ObjectSchema(map[string]gateway.Schema{
				"query": gateway.StringSchema("The search query to look up on the web"),
			}, []string{"query"})),
		},
		Handler: func(ctx context.Context, args Args) string {
			query, err := args.RequiredString("query")
			if err != nil {
				return InvalidArguments
			}
			results, err := searcher.Search(ctx, query)
			if err != nil {
				if errors.Is(err, search.ErrUnavailable) {
					return search.Unavailable
				}
				return "Search error: " + err.Error()
			}
			return search.FormatResults(results)
		},
	}
}

// schemaPointer returns a pointer to the provided schema value.
func schemaPointer(schema gateway.Schema) *gateway.Schema {
	return &schema
}
