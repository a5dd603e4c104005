package parsers

import (
	"fmt"
	"regexp"
	"strings"

	"council/internal/council"
)

var revisedHeader = regexp.MustCompile(`(?i)##\s*Revised Response\s*\n`)

// ParseRevisedAnswer extracts the text after the ## Revised Response
// header of a defense. Falls back to the full defense content, so the
// result is never empty for non-empty input.
func ParseRevisedAnswer(defense string) string {
	if loc := revisedHeader.FindStringIndex(defense); loc != nil {
		if revised := strings.TrimSpace(defense[loc[1]:]); revised != "" {
			return revised
		}
	}
	return defense
}

// NoCritiquesExtracted is returned when no critique section targets the
// model.
const NoCritiquesExtracted = "(No specific critiques were extracted for this model)"

var (
	critiqueHeader = regexp.MustCompile(`(?i)##\s*Critique of[^\n]*(\n|$)`)
	anyHeader      = regexp.MustCompile(`(?m)^##[^\n]*(\n|$)`)
)

// ExtractCritiquesFor collects the critique sections aimed at the target
// model across all critique responses, attributing each to its author.
// Matching tolerates provider prefixes, case, and surrounding punctuation
// by looking for the target's bare model name inside the header line.
func ExtractCritiquesFor(targetModel string, critiques []council.Response) string {
	targetName := strings.ToLower(bareModelName(targetModel))

	var sections []string
	for _, response := range critiques {
		if response.Model == targetModel {
			continue
		}
		section, ok := sectionFor(response.Content, targetName, critiqueHeader)
		if !ok {
			section, ok = sectionFor(response.Content, targetName, anyHeader)
		}
		if ok {
			sections = append(sections, fmt.Sprintf("**From %s:**\n%s", response.Model, section))
		}
	}
	if len(sections) == 0 {
		return NoCritiquesExtracted
	}
	return strings.Join(sections, "\n\n")
}

// sectionFor finds the first header mentioning the target and returns the
// body up to the next header of the same kind.
func sectionFor(content, targetName string, header *regexp.Regexp) (string, bool) {
	headers := header.FindAllStringIndex(content, -1)
	for i, loc := range headers {
		line := strings.ToLower(content[loc[0]:loc[1]])
		if !strings.Contains(line, targetName) {
			continue
		}
		end := len(content)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		return strings.TrimSpace(content[loc[1]:end]), true
	}
	return "", false
}

// bareModelName strips a provider prefix like "openai/" from a model id.
func bareModelName(model string) string {
	if idx := strings.LastIndex(model, "/"); idx >= 0 {
		return model[idx+1:]
	}
	return model
}
