// Package prompts builds the prompt strings for every deliberation phase.
// Builders are pure: identical inputs always produce identical prompts.
package prompts

import (
	"fmt"
	"strings"
	"time"

	"council/internal/council"
)

// DateContext renders the calendar-date preamble that orients
// time-sensitive searches.
func DateContext(now time.Time) string {
	return fmt.Sprintf("Today's date is %s.\n\n", now.Format("January 2, 2006"))
}

// BuildInitial produces the first-round prompt: the dated question plus a
// notice that web search is available.
func BuildInitial(userQuery string, now time.Time) string {
	return DateContext(now) + userQuery + "\n\nYou may use the search_web tool when up-to-date information would improve your answer."
}

// FormatResponsesForCritique renders attributed responses for the critique
// round.
func FormatResponsesForCritique(responses []council.Response) string {
	parts := make([]string, 0, len(responses))
	for _, response := range responses {
		parts = append(parts, fmt.Sprintf("**%s:**\n%s", response.Model, response.Content))
	}
	return strings.Join(parts, "\n\n")
}

// BuildCritique produces the critique-round prompt for one participant.
func BuildCritique(userQuery, responsesText, model string, now time.Time) string {
	return fmt.Sprintf(`%sYou are participating in a multi-model debate on the following question:

**Question:** %s

Here are the initial responses from all participating models:

%s

Your task is to critically evaluate the OTHER models' responses (not your own). For each model except yourself, provide a thorough critique that:
- Identifies strengths and what they got right
- Points out weaknesses, errors, or gaps in reasoning
- Challenges any questionable assumptions
- Notes missing information or perspectives

Your own response is from **%s** - do NOT critique yourself.

Format your response as follows:

## Critique of [Model Name]
[Your critique]

## Critique of [Model Name]
[Your critique]

(Continue for each model except yourself)`, DateContext(now), userQuery, responsesText, model)
}

// BuildDefense produces the defense-round prompt for one participant.
func BuildDefense(userQuery, originalResponse, critiques string, now time.Time) string {
	return fmt.Sprintf(`%sYou are participating in a multi-model debate on the following question:

**Question:** %s

**Your original response:**
%s

**Critiques of your response from other models:**
%s

Your task is to:
1. Address the specific criticisms raised against your response
2. Defend points where you believe you were correct
3. Acknowledge valid criticisms and incorporate them
4. Provide a REVISED response that improves upon your original

Format your response as follows:

## Addressing Critiques
[Address each major criticism, explaining where you stand firm and where you concede]

## Revised Response
[Your updated, improved answer to the original question]`, DateContext(now), userQuery, originalResponse, critiques)
}

// FormatAnonymizedResponses renders labeled responses for peer ranking.
// Labels pair positionally with responses.
func FormatAnonymizedResponses(labels []string, responses []council.Response) string {
	parts := make([]string, 0, len(responses))
	for i, response := range responses {
		parts = append(parts, fmt.Sprintf("Response %s:\n%s", labels[i], response.Content))
	}
	return strings.Join(parts, "\n\n")
}

// BuildPeerRank produces the stage-2 ranking prompt over anonymized
// responses.
func BuildPeerRank(userQuery, responsesText string) string {
	return fmt.Sprintf(`You are evaluating different responses to the following question:

Question: %s

Here are the responses from different models (anonymized):

%s

Your task:
1. First, evaluate each response individually. For each response, explain what it does well and what it does poorly.
2. Then, at the very end of your response, provide a final ranking.

IMPORTANT: Your final ranking MUST be formatted EXACTLY as follows:
- Start with the line "FINAL RANKING:" (all caps, with colon)
- Then list the responses from best to worst as a numbered list
- Each line should be: number, period, space, then ONLY the response label (e.g., "1. Response A")
- Do not add any other text or explanations in the ranking section

Example of the correct format for your ENTIRE response:

Response A provides good detail on X but misses Y...
Response B is accurate but lacks depth on Z...
Response C offers the most comprehensive answer...

FINAL RANKING:
1. Response C
2. Response A
3. Response B

Now provide your evaluation and ranking:`, userQuery, responsesText)
}

// BuildReflection produces the chairman reflection prompt. No tools are
// offered; the chairman reasons over existing content only.
func BuildReflection(contextText string, now time.Time) string {
	return fmt.Sprintf("%sYou are the Chairman of an LLM Council. Your role is to deeply analyse the responses provided by the council models and produce a single, comprehensive, accurate final answer.\n\nBefore writing your final answer, reflect on the following:\n1. **Areas of agreement** — Where do the models converge? Shared conclusions are likely reliable.\n2. **Areas of disagreement** — Where do they diverge? Evaluate which side presents stronger evidence or reasoning.\n3. **Factual claims that warrant scrutiny** — Note any claims that seem uncertain, contradictory, or surprising.\n4. **Quality differences** — Which responses are most thorough, well-reasoned, and supported?\n\nAfter your analysis, provide your final answer under a `## Synthesis` header.\n\n%s\n\nBegin your analysis:", DateContext(now), contextText)
}

// BuildTitle produces the conversation title prompt.
func BuildTitle(userQuery string) string {
	return fmt.Sprintf(`Generate a very short title (3-5 words maximum) that summarizes the following question.
The title should be concise and descriptive. Do not use quotes or punctuation in the title.

Question: %s

Title:`, userQuery)
}
