package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config models cityline.yml.
type Config struct {
	LLM struct {
		BaseURL   string `yaml:"base_url"`
		Model     string `yaml:"model"`
		APIKeyEnv string `yaml:"api_key_env"`
		// TimeoutSeconds bounds each completion round trip.
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"llm"`
	// Roles maps each orchestration role to its display model label.
	// A labeling convention only; all calls go through the same endpoint.
	Roles map[string]string `yaml:"roles"`
	Narration struct {
		// DelayMS paces narration entries for human-watchable progress.
		// Zero disables pacing; execution semantics do not depend on it.
		DelayMS int `yaml:"delay_ms"`
	} `yaml:"narration"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
}

// Role labels carried over from the reference deployment.
var defaultRoles = map[string]string{
	"architect": "GPT-4 (Architect)",
	"database":  "Llama (Database)",
	"backend":   "Gemini (Backend)",
	"frontend":  "Claude (Frontend)",
	"qa":        "Mistral (QA)",
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.LLM.BaseURL = "https://api.openai.com/v1"
	cfg.LLM.Model = "gpt-4o"
	cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	cfg.LLM.TimeoutSeconds = 180
	cfg.Roles = map[string]string{}
	for role, label := range defaultRoles {
		cfg.Roles[role] = label
	}
	cfg.Narration.DelayMS = 800
	return cfg
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, "cityline.yml")
}

// Load reads config from the workspace, falling back to defaults when the
// file does not exist.
func Load(workspace string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses config bytes, filling defaults for absent sections.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("config.llm.base_url is required")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("config.llm.model is required")
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return fmt.Errorf("config.llm.timeout_seconds must be positive")
	}
	if c.Narration.DelayMS < 0 {
		return fmt.Errorf("config.narration.delay_ms must not be negative")
	}
	for _, role := range []string{"architect", "database", "backend", "frontend", "qa"} {
		if c.Roles[role] == "" {
			return fmt.Errorf("config.roles.%s is required", role)
		}
	}
	return nil
}

// LLMTimeout returns the completion timeout as a duration.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// RoleLabel returns the display label for a role, defaulting to the role name.
func (c *Config) RoleLabel(role string) string {
	if label := c.Roles[role]; label != "" {
		return label
	}
	return role
}
