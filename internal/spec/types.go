// Package spec defines the configuration schema and its parser.
package spec

// Config is the council.yaml schema.
type Config struct {
	Participants []string         `yaml:"participants"`
	Chairman     string           `yaml:"chairman"`
	UseReAct     bool             `yaml:"use_react"`
	Cycles       int              `yaml:"cycles"`
	Timeouts     TimeoutConfig    `yaml:"timeouts"`
	MaxToolCalls ToolCallLimits   `yaml:"max_tool_calls"`
	Search       SearchConfig     `yaml:"search"`
	DataDir      string           `yaml:"data_dir"`
	OpenRouter   OpenRouterConfig `yaml:"openrouter"`
}

// TimeoutConfig holds wall-clock limits in seconds.
type TimeoutConfig struct {
	ParticipantSeconds int `yaml:"participant_seconds"`
	TitleSeconds       int `yaml:"title_seconds"`
}

// ToolCallLimits caps tool-execution rounds per request cycle.
type ToolCallLimits struct {
	Query  int `yaml:"query"`
	Stream int `yaml:"stream"`
}

// SearchConfig tunes the web search provider.
type SearchConfig struct {
	MaxResults int    `yaml:"max_results"`
	Depth      string `yaml:"depth"`
	BaseURL    string `yaml:"base_url"`
}

// OpenRouterConfig points at the LLM gateway.
type OpenRouterConfig struct {
	BaseURL string `yaml:"base_url"`
}
