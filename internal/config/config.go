// Package config loads and validates roundtable configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"roundtable/internal/types"
)

// ErrMissingAPIKey is the fatal configuration error raised before any
// dispatch when no credential is available.
var ErrMissingAPIKey = errors.New("API key not configured: set api.key or the OPENAI_API_KEY environment variable")

// Config holds all roundtable configuration.
type Config struct {
	// Model identifiers per capability tier
	Models ModelsConfig `yaml:"models"`

	// Inference endpoint settings
	API APIConfig `yaml:"api"`

	// Orchestration limits
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`

	// Retry policy bounds
	Retry RetryConfig `yaml:"retry"`

	// Result cache
	Cache CacheConfig `yaml:"cache"`

	// Per-agent sampling temperature, keyed by agent slug. Missing agents
	// fall back to DefaultTemperature.
	Temperatures map[string]float64 `yaml:"temperatures"`

	// DefaultTemperature applies when no per-agent override exists.
	DefaultTemperature float64 `yaml:"default_temperature"`

	// Report output
	Output OutputConfig `yaml:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ModelsConfig maps capability tiers to concrete model identifiers.
type ModelsConfig struct {
	Powerful string `yaml:"powerful"`
	Standard string `yaml:"standard"`
	Basic    string `yaml:"basic"`
}

// ForTier resolves a tier to its configured model identifier.
func (m ModelsConfig) ForTier(tier types.ModelTier) string {
	switch tier {
	case types.TierPowerful:
		return m.Powerful
	case types.TierStandard:
		return m.Standard
	default:
		return m.Basic
	}
}

// APIConfig configures the inference endpoint.
type APIConfig struct {
	Key       string `yaml:"key"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
}

// OrchestratorConfig bounds the concurrent dispatch of agents.
type OrchestratorConfig struct {
	MaxParallelAgents int `yaml:"max_parallel_agents"`
	AgentTimeoutSecs  int `yaml:"agent_timeout_seconds"`
}

// AgentTimeout returns the per-call timeout.
func (o OrchestratorConfig) AgentTimeout() time.Duration {
	return time.Duration(o.AgentTimeoutSecs) * time.Second
}

// RetryConfig bounds the exponential backoff policy.
type RetryConfig struct {
	MaxAttempts      int `yaml:"max_attempts"`
	InitialDelaySecs int `yaml:"initial_delay_seconds"`
	MaxDelaySecs     int `yaml:"max_delay_seconds"`
}

// InitialDelay returns the first backoff delay.
func (r RetryConfig) InitialDelay() time.Duration {
	return time.Duration(r.InitialDelaySecs) * time.Second
}

// MaxDelay returns the backoff cap.
func (r RetryConfig) MaxDelay() time.Duration {
	return time.Duration(r.MaxDelaySecs) * time.Second
}

// CacheConfig controls the result cache. With an empty Path the cache is
// in-memory for the lifetime of the run; with a Path set, entries persist
// across runs in a sqlite database.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig controls logger construction.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Models: ModelsConfig{
			Powerful: "o3",
			Standard: "gpt-4.1",
			Basic:    "gpt-4.1-mini",
		},
		API: APIConfig{
			BaseURL:   "https://api.openai.com/v1",
			MaxTokens: 4000,
		},
		Orchestrator: OrchestratorConfig{
			MaxParallelAgents: 3,
			AgentTimeoutSecs:  300,
		},
		Retry: RetryConfig{
			MaxAttempts:      3,
			InitialDelaySecs: 4,
			MaxDelaySecs:     60,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		DefaultTemperature: 1.0,
		Output: OutputConfig{
			Dir: "review_output",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; the defaults are returned unchanged. Environment overrides are
// applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() {
	if c.API.Key == "" {
		c.API.Key = os.Getenv("OPENAI_API_KEY")
	}
	if v := os.Getenv("ROUNDTABLE_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
}

// Temperature resolves the sampling temperature for an agent slug.
func (c *Config) Temperature(slug string) float64 {
	if t, ok := c.Temperatures[slug]; ok {
		return t
	}
	if c.DefaultTemperature > 0 {
		return c.DefaultTemperature
	}
	return 1.0
}

// Validate checks the configuration before any dispatch begins. A missing
// credential is fatal to the whole run.
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return ErrMissingAPIKey
	}
	if c.Models.Powerful == "" || c.Models.Standard == "" || c.Models.Basic == "" {
		return errors.New("all three tier models must be configured")
	}
	if c.Orchestrator.MaxParallelAgents < 1 {
		return fmt.Errorf("max_parallel_agents must be >= 1, got %d", c.Orchestrator.MaxParallelAgents)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max_attempts must be >= 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
