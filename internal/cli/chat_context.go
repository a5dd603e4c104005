package cli

import (
	"strings"

	"council/internal/store"
)

// conversationPair is one user question with the council's final answer.
type conversationPair struct {
	user      string
	assistant string
}

// extractPairs pulls (user, answer) pairs from stored turns. Only the
// synthesis is used as assistant context; intermediate rounds stay out of
// follow-up prompts.
func extractPairs(turns []store.Turn) []conversationPair {
	var pairs []conversationPair
	pendingUser := ""
	havePending := false

	for _, turn := range turns {
		switch turn.Role {
		case "user":
			pendingUser = turn.Content
			havePending = true
		case "assistant":
			if !havePending {
				continue
			}
			answer := ""
			if turn.Council != nil {
				answer = strings.TrimSpace(turn.Council.Synthesis.Content)
			}
			if answer == "" {
				answer = strings.TrimSpace(turn.Content)
			}
			if answer != "" {
				pairs = append(pairs, conversationPair{user: pendingUser, assistant: answer})
			}
			havePending = false
		}
	}
	return pairs
}

// selectPairs keeps the first exchange plus the last maxTurns exchanges.
func selectPairs(pairs []conversationPair, maxTurns int) []conversationPair {
	if maxTurns <= 0 || len(pairs) == 0 {
		return nil
	}
	if len(pairs) <= maxTurns+1 {
		return pairs
	}
	selected := make([]conversationPair, 0, maxTurns+1)
	selected = append(selected, pairs[0])
	return append(selected, pairs[len(pairs)-maxTurns:]...)
}

// buildContextPrompt formats prior exchanges as a context block, or ""
// when there is nothing to thread.
func buildContextPrompt(conversation *store.Conversation, maxTurns int) string {
	if conversation == nil {
		return ""
	}
	selected := selectPairs(extractPairs(conversation.Turns), maxTurns)
	if len(selected) == 0 {
		return ""
	}

	var body strings.Builder
	for _, pair := range selected {
		body.WriteString("User: " + pair.user + "\n")
		body.WriteString("Assistant: " + pair.assistant + "\n\n")
	}
	return "Conversation context (earliest to latest):\n" +
		strings.TrimRight(body.String(), "\n") +
		"\n\nUse the context above if it is relevant to the current question."
}
