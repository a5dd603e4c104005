package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env holds secrets read from the environment; they never live in YAML.
type Env struct {
	OpenRouterKey string
	TavilyKey     string
}

// LoadEnv reads a .env file when present, then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()
	return Env{
		OpenRouterKey: strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		TavilyKey:     strings.TrimSpace(os.Getenv("TAVILY_API_KEY")),
	}
}
