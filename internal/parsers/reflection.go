package parsers

import (
	"regexp"
	"strings"
)

var synthesisHeader = regexp.MustCompile(`(?i)##\s*Synthesis\s*\n`)

// SplitReflection splits chairman output at the ## Synthesis header. When
// the header is absent the whole content is the synthesis and the
// reflection is empty.
func SplitReflection(text string) (reflection, synthesis string) {
	if loc := synthesisHeader.FindStringIndex(text); loc != nil {
		return strings.TrimSpace(text[:loc[0]]), strings.TrimSpace(text[loc[1]:])
	}
	return "", strings.TrimSpace(text)
}
