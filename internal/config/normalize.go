package config

import "council/internal/spec"

// Built-in defaults, used when council.yaml is absent or partial.
var defaultParticipants = []string{
	"openai/gpt-4o-mini",
	"x-ai/grok-3",
	"deepseek/deepseek-chat",
}

const (
	defaultChairman           = "openai/gpt-4o-mini"
	defaultCycles             = 1
	defaultParticipantSeconds = 120
	defaultTitleSeconds       = 30
	defaultQueryToolCalls     = 5
	defaultStreamToolCalls    = 5
	defaultSearchResults      = 5
	defaultSearchDepth        = "basic"
	defaultDataDir            = "data/conversations"
)

// Normalize fills unset fields with defaults.
func Normalize(cfg *spec.Config) {
	if len(cfg.Participants) == 0 {
		cfg.Participants = append([]string(nil), defaultParticipants...)
	}
	if cfg.Chairman == "" {
		cfg.Chairman = defaultChairman
	}
	if cfg.Cycles == 0 {
		cfg.Cycles = defaultCycles
	}
	if cfg.Timeouts.ParticipantSeconds == 0 {
		cfg.Timeouts.ParticipantSeconds = defaultParticipantSeconds
	}
	if cfg.Timeouts.TitleSeconds == 0 {
		cfg.Timeouts.TitleSeconds = defaultTitleSeconds
	}
	if cfg.MaxToolCalls.Query == 0 {
		cfg.MaxToolCalls.Query = defaultQueryToolCalls
	}
	if cfg.MaxToolCalls.Stream == 0 {
		cfg.MaxToolCalls.Stream = defaultStreamToolCalls
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = defaultSearchResults
	}
	if cfg.Search.Depth == "" {
		cfg.Search.Depth = defaultSearchDepth
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
}
