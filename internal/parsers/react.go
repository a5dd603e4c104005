package parsers

import (
	"regexp"
	"strings"
)

// ReAct action names recognized by the agent loop. Synthesize is accepted
// as a terminal alias of respond.
const (
	ActionSearchWeb  = "search_web"
	ActionRespond    = "respond"
	ActionSynthesize = "synthesize"
)

var (
	thoughtPattern = regexp.MustCompile(`(?is)Thought:\s*(.+?)(?:\n\s*Action:|$)`)
	actionPattern  = regexp.MustCompile(`(?i)Action:\s*(\w+)\s*\(([^)]*)\)`)
)

// ParseReAct extracts the first Thought and Action from ReAct output.
// Any of the three return values may be empty: the thought when no Thought
// block exists, the action when none of the known actions is present, and
// the argument for terminal actions.
func ParseReAct(text string) (thought, action, arg string) {
	if match := thoughtPattern.FindStringSubmatch(text); match != nil {
		thought = strings.TrimSpace(match[1])
	}
	if match := actionPattern.FindStringSubmatch(text); match != nil {
		name := strings.ToLower(match[1])
		switch name {
		case ActionSearchWeb:
			action = ActionSearchWeb
			arg = strings.Trim(strings.TrimSpace(match[2]), `"'`)
		case ActionRespond, ActionSynthesize:
			action = name
		}
	}
	return thought, action, arg
}

// TerminalAction reports whether an action name ends the loop.
func TerminalAction(action string) bool {
	return action == ActionRespond || action == ActionSynthesize
}

// ExtractAfterAction returns the text following "Action: <name>()", used to
// pull the final answer a model writes after its terminal action. The
// second result reports whether the action marker was found.
func ExtractAfterAction(text, action string) (string, bool) {
	pattern := regexp.MustCompile(`(?is)Action:\s*` + regexp.QuoteMeta(action) + `\s*\(\s*\)\s*\n*(.*)`)
	if match := pattern.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1]), true
	}
	return "", false
}
