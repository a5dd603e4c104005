package parsers

import (
	"strings"
	"testing"

	"council/internal/council"
)

func TestParseRevisedAnswer(t *testing.T) {
	defense := `## Addressing Critiques
I concede the date was wrong.

## Revised Response
The treaty was signed in 1648.`
	got := ParseRevisedAnswer(defense)
	if got != "The treaty was signed in 1648." {
		t.Fatalf("ParseRevisedAnswer = %q", got)
	}
}

func TestParseRevisedAnswerCaseAndSpacing(t *testing.T) {
	defense := "intro\n##   revised response\nfinal text"
	if got := ParseRevisedAnswer(defense); got != "final text" {
		t.Fatalf("ParseRevisedAnswer = %q", got)
	}
}

func TestParseRevisedAnswerFallback(t *testing.T) {
	defense := "I stand by everything I wrote."
	if got := ParseRevisedAnswer(defense); got != defense {
		t.Fatalf("ParseRevisedAnswer = %q, want full content", got)
	}
}

func TestExtractCritiquesForModel(t *testing.T) {
	critiques := []council.Response{
		{
			Model: "openai/gpt-4o-mini",
			Content: `## Critique of x-ai/grok-3
Too speculative.

## Critique of deepseek-chat
Solid but shallow.`,
		},
		{
			Model: "deepseek/deepseek-chat",
			Content: `## Critique of gpt-4o-mini
Misses the edge case.

## Critique of grok-3
Good sourcing, weak math.`,
		},
	}

	got := ExtractCritiquesFor("x-ai/grok-3", critiques)
	if !strings.Contains(got, "**From openai/gpt-4o-mini:**") {
		t.Fatalf("missing first critic attribution: %q", got)
	}
	if !strings.Contains(got, "Too speculative.") {
		t.Fatalf("missing first critique body: %q", got)
	}
	if !strings.Contains(got, "**From deepseek/deepseek-chat:**") || !strings.Contains(got, "weak math") {
		t.Fatalf("missing second critique: %q", got)
	}
	if strings.Contains(got, "shallow") {
		t.Fatalf("captured a section for a different model: %q", got)
	}
}

func TestExtractCritiquesSkipsSelf(t *testing.T) {
	critiques := []council.Response{
		{Model: "x-ai/grok-3", Content: "## Critique of grok-3\nself talk"},
	}
	if got := ExtractCritiquesFor("x-ai/grok-3", critiques); got != NoCritiquesExtracted {
		t.Fatalf("ExtractCritiquesFor = %q, want sentinel", got)
	}
}

func TestExtractCritiquesHeaderFallback(t *testing.T) {
	critiques := []council.Response{
		{Model: "a/critic", Content: "## Thoughts on grok-3\nreasonable but rushed\n\n## Other\nignored"},
	}
	got := ExtractCritiquesFor("x-ai/grok-3", critiques)
	if !strings.Contains(got, "reasonable but rushed") {
		t.Fatalf("fallback header not matched: %q", got)
	}
	if strings.Contains(got, "ignored") {
		t.Fatalf("fallback captured past the next header: %q", got)
	}
}

func TestExtractCritiquesNone(t *testing.T) {
	critiques := []council.Response{
		{Model: "a/critic", Content: "## Critique of somebody-else\ntext"},
	}
	if got := ExtractCritiquesFor("x-ai/grok-3", critiques); got != NoCritiquesExtracted {
		t.Fatalf("ExtractCritiquesFor = %q, want sentinel", got)
	}
}
