package ranking

import (
	"context"
	"strings"
	"time"

	"council/internal/council"
	"council/internal/gateway"
	"council/internal/prompts"
)

// titleTimeout bounds the title request; titles are best-effort.
const titleTimeout = 30 * time.Second

// titleMaxRunes truncates overlong generated titles.
const titleMaxRunes = 50

// fallbackTitle is used when title generation fails.
const fallbackTitle = "New Conversation"

// GenerateTitle produces a short conversation title from the first user
// message. Failures fall back to a generic title.
func GenerateTitle(ctx context.Context, client gateway.Client, model, userQuery string) string {
	prompt := prompts.BuildTitle(userQuery)
	reply, err := client.Query(ctx, model, council.UserMessage(prompt), nil, titleTimeout)
	if err != nil {
		return fallbackTitle
	}
	title := strings.TrimSpace(reply.Content)
	title = strings.Trim(title, `"'`)
	if title == "" {
		return fallbackTitle
	}
	runes := []rune(title)
	if len(runes) > titleMaxRunes {
		title = string(runes[:titleMaxRunes-3]) + "..."
	}
	return title
}
