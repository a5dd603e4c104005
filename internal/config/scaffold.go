package config

import (
	"fmt"
	"os"
)

// scaffoldTemplate is the starter config written by `council init`.
const scaffoldTemplate = `# Council configuration.
# API keys come from the environment: OPENROUTER_API_KEY, TAVILY_API_KEY.

participants:
  - openai/gpt-4o-mini
  - x-ai/grok-3
  - deepseek/deepseek-chat

chairman: openai/gpt-4o-mini

# Critique/defense pairs after the initial round.
cycles: 1

use_react: false

timeouts:
  participant_seconds: 120
  title_seconds: 30

max_tool_calls:
  query: 5
  stream: 5

search:
  max_results: 5
  depth: basic

data_dir: data/conversations
`

// Scaffold writes a starter config file, refusing to overwrite.
func Scaffold(path string) error {
	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	return os.WriteFile(path, []byte(scaffoldTemplate), 0o644)
}
