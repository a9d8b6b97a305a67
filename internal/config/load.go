package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when the config file carries no API keys.
const (
	EnvGeminiKeys = "GEMINI_API_KEYS"
	EnvOpenAIKey  = "OPENAI_API_KEY"
)

// Load reads a YAML or TOML (by extension) config file, applies environment
// fallbacks and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse toml config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if len(c.Transcriber.APIKeys) > 0 {
		return
	}
	var raw string
	switch strings.ToLower(strings.TrimSpace(c.Transcriber.Backend)) {
	case BackendOpenAI:
		raw = os.Getenv(EnvOpenAIKey)
	case "", BackendGemini:
		raw = os.Getenv(EnvGeminiKeys)
	}
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			c.Transcriber.APIKeys = append(c.Transcriber.APIKeys, key)
		}
	}
}
