package prompts

import (
	"fmt"
	"strings"

	"council/internal/council"
)

// WrapReAct prepends the Thought/Action/Observation protocol to a prompt.
// It declares search_web and the terminal respond() action and caps the
// reasoning at maxSteps iterations.
func WrapReAct(prompt string, maxSteps int) string {
	return fmt.Sprintf(`You are reasoning step by step using ReAct (Reasoning + Acting).

You have access to the following tool:
- search_web(query): Search the web to verify facts or get current information

When you have enough information, call respond() and write your final answer after it.

IMPORTANT FORMAT - You MUST respond in this exact format:

Thought: <your reasoning about what you know and what you need>
Action: <either search_web("query") or respond()>

If you call search_web, you will receive an Observation with the results, then continue reasoning.
If you call respond(), write your final comprehensive answer after it.

Maximum %d reasoning steps allowed. If unsure, respond with available information.

%s

Begin your reasoning:`, maxSteps, prompt)
}

// BuildChairmanContextRanking formats ranking-mode results for the
// chairman.
func BuildChairmanContextRanking(userQuery string, stage1 []council.Response, stage2 []council.RankingRecord) string {
	stage1Parts := make([]string, 0, len(stage1))
	for _, result := range stage1 {
		stage1Parts = append(stage1Parts, fmt.Sprintf("Model: %s\nResponse: %s", result.Model, result.Content))
	}
	stage2Parts := make([]string, 0, len(stage2))
	for _, record := range stage2 {
		stage2Parts = append(stage2Parts, fmt.Sprintf("Model: %s\nRanking: %s", record.Model, record.Evaluation))
	}
	return fmt.Sprintf(`Original Question: %s

STAGE 1 - Individual Responses:
%s

STAGE 2 - Peer Rankings:
%s`, userQuery, strings.Join(stage1Parts, "\n\n"), strings.Join(stage2Parts, "\n\n"))
}

// BuildChairmanContextDebate formats the round-by-round debate transcript
// for the chairman.
func BuildChairmanContextDebate(userQuery string, rounds []council.RoundRecord) string {
	var transcript strings.Builder
	for _, round := range rounds {
		transcript.WriteString("\n" + strings.Repeat("=", 60) + "\n")
		transcript.WriteString(fmt.Sprintf("ROUND %d: %s\n", round.RoundNumber, strings.ToUpper(string(round.RoundType))))
		transcript.WriteString(strings.Repeat("=", 60) + "\n")
		for _, response := range round.Responses {
			transcript.WriteString(fmt.Sprintf("\n**%s:**\n%s\n", response.Model, response.Content))
		}
	}
	return fmt.Sprintf(`Original Question: %s

The debate consisted of %d rounds:
1. **Initial Responses**: Each model provided their initial answer
2. **Critiques**: Each model critically evaluated the other models' responses
3. **Defense/Revision**: Each model addressed critiques and revised their answer

DEBATE TRANSCRIPT:
%s`, userQuery, len(rounds), transcript.String())
}
