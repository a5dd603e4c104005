package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"council/internal/spec"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Participants) != 3 || cfg.Chairman == "" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.Cycles != 1 || cfg.Timeouts.ParticipantSeconds != 120 {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoadParsesAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "council.yaml")
	content := `participants:
  - a/one
  - b/two
chairman: a/one
cycles: 2
use_react: true
timeouts:
  participant_seconds: 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cycles != 2 || !cfg.UseReAct || cfg.Timeouts.ParticipantSeconds != 30 {
		t.Fatalf("cfg = %+v", cfg)
	}
	// Unset sections are normalized.
	if cfg.MaxToolCalls.Query != 5 || cfg.DataDir == "" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "council.yaml")
	if err := os.WriteFile(path, []byte("particpants: [a]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown-field error")
	}
}

func TestValidateErrors(t *testing.T) {
	base := func() spec.Config {
		cfg := spec.Config{Participants: []string{"a", "b"}, Chairman: "a"}
		Normalize(&cfg)
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*spec.Config)
		want   string
	}{
		{"one participant", func(c *spec.Config) { c.Participants = []string{"a"} }, "at least 2 participants"},
		{"duplicate participant", func(c *spec.Config) { c.Participants = []string{"a", "a"} }, "duplicate participant"},
		{"no chairman", func(c *spec.Config) { c.Chairman = " " }, "chairman"},
		{"negative cycles", func(c *spec.Config) { c.Cycles = -1 }, "cycles"},
		{"bad tool cap", func(c *spec.Config) { c.MaxToolCalls.Query = 0 }, "max_tool_calls"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := Validate(&cfg)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestScaffoldRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "council.yaml")
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if err := Scaffold(path); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("scaffolded config does not load: %v", err)
	}
	if len(cfg.Participants) != 3 {
		t.Fatalf("cfg = %+v", cfg)
	}
}
