// Package config provides configuration loading and validation for the
// grammar check service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Correction provider identifiers.
const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
)

// Config represents the service configuration. It is constructed once at
// process start and is immutable for the process lifetime. All fields are
// optional in the config file; missing values use defaults or come from
// the environment.
type Config struct {
	// Process
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`

	// Credentials
	HuggingFaceAPIKey string `json:"huggingface_api_key,omitempty"`
	GeminiAPIKey      string `json:"gemini_api_key,omitempty"`

	// Model selection
	CorrectionProvider string `json:"correction_provider,omitempty"` // huggingface or gemini
	AcceptabilityModel string `json:"acceptability_model,omitempty"`
	CorrectionModel    string `json:"correction_model,omitempty"`
	GeminiModel        string `json:"gemini_model,omitempty"`

	// Fallback policy
	AcceptThreshold     float64 `json:"accept_threshold,omitempty"`
	MinEscalationLength int     `json:"min_escalation_length,omitempty"`
	MaxNewTokens        int     `json:"max_new_tokens,omitempty"`

	// Timeouts
	InferenceTimeoutSeconds int `json:"inference_timeout_seconds,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Intended as the
// defaults layer under a config file and CLI flags.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		HuggingFaceAPIKey:  os.Getenv("HUGGINGFACE_API_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		CorrectionProvider: os.Getenv("CORRECTION_PROVIDER"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.AcceptThreshold < 0 || c.AcceptThreshold > 1 {
		return fmt.Errorf("config error: 'accept_threshold' must be in [0, 1]")
	}
	if c.MinEscalationLength < 0 {
		return fmt.Errorf("config error: 'min_escalation_length' must be non-negative")
	}
	if c.MaxNewTokens < 0 {
		return fmt.Errorf("config error: 'max_new_tokens' must be non-negative")
	}

	switch c.CorrectionProvider {
	case "", ProviderHuggingFace:
		// HuggingFace also serves the primary model, key checked at startup.
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: 'gemini_api_key' is required when correction_provider is %s", ProviderGemini)
		}
	default:
		return fmt.Errorf("config error: unknown correction_provider %q", c.CorrectionProvider)
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. This is used to apply environment values as defaults for
// config file and CLI flag values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.HuggingFaceAPIKey == "" {
		result.HuggingFaceAPIKey = defaults.HuggingFaceAPIKey
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.CorrectionProvider == "" {
		result.CorrectionProvider = defaults.CorrectionProvider
	}
	if result.AcceptabilityModel == "" {
		result.AcceptabilityModel = defaults.AcceptabilityModel
	}
	if result.CorrectionModel == "" {
		result.CorrectionModel = defaults.CorrectionModel
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.AcceptThreshold == 0 {
		result.AcceptThreshold = defaults.AcceptThreshold
	}
	if result.MinEscalationLength == 0 {
		result.MinEscalationLength = defaults.MinEscalationLength
	}
	if result.MaxNewTokens == 0 {
		result.MaxNewTokens = defaults.MaxNewTokens
	}
	if result.InferenceTimeoutSeconds == 0 {
		result.InferenceTimeoutSeconds = defaults.InferenceTimeoutSeconds
	}

	return result
}
