package config

import (
	"fmt"
	"strings"

	"council/internal/spec"
)

// Validate rejects configurations the engine cannot run with.
func Validate(cfg *spec.Config) error {
	if len(cfg.Participants) < 2 {
		return fmt.Errorf("config: at least 2 participants are required, got %d", len(cfg.Participants))
	}
	seen := map[string]bool{}
	for _, participant := range cfg.Participants {
		if strings.TrimSpace(participant) == "" {
			return fmt.Errorf("config: participant ids must not be empty")
		}
		if seen[participant] {
			return fmt.Errorf("config: duplicate participant %q", participant)
		}
		seen[participant] = true
	}
	if strings.TrimSpace(cfg.Chairman) == "" {
		return fmt.Errorf("config: chairman is required")
	}
	if cfg.Cycles < 1 {
		return fmt.Errorf("config: cycles must be at least 1, got %d", cfg.Cycles)
	}
	if cfg.Timeouts.ParticipantSeconds < 1 {
		return fmt.Errorf("config: timeouts.participant_seconds must be positive")
	}
	if cfg.MaxToolCalls.Query < 1 || cfg.MaxToolCalls.Stream < 1 {
		return fmt.Errorf("config: max_tool_calls limits must be at least 1")
	}
	return nil
}
