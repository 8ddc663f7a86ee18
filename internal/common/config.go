package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Logging     LoggingConfig  `toml:"logging"`
	Pipeline    PipelineConfig `toml:"pipeline"`
	Lexicon     LexiconConfig  `toml:"lexicon"`
	LLM         LLMConfig      `toml:"llm"`
	Claude      ClaudeConfig   `toml:"claude"`
	Gemini      GeminiConfig   `toml:"gemini"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Output []string `toml:"output"`                                      // "stdout", "file"
}

// PipelineConfig carries the externally supplied classification
// parameters. They are validated at startup; the service refuses to start
// with invalid thresholds.
type PipelineConfig struct {
	MinDealAmountUSD float64 `toml:"min_deal_amount_usd" validate:"gt=0"` // Minimum deal size counted as M&A (USD-equivalent)
	MaxInputChars    int     `toml:"max_input_chars" validate:"gt=0"`     // Inbound text size limit
	MaxPromptChars   int     `toml:"max_prompt_chars" validate:"gt=0"`    // Announcement text budget inside the AI prompt
}

// LexiconConfig points at an optional TOML file replacing the built-in
// keyword/entity/currency tables.
type LexiconConfig struct {
	Path string `toml:"path"`
}

// LLMProvider represents the AI provider type.
type LLMProvider string

const (
	// LLMProviderClaude uses the Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
	// LLMProviderGemini uses the Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
)

// LLMConfig selects the AI fallback provider.
type LLMConfig struct {
	Provider LLMProvider `toml:"provider" validate:"oneof=claude gemini"`
}

// ClaudeConfig contains Anthropic Claude API configuration.
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model name (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 1024)
	Timeout     string  `toml:"timeout"`     // Call timeout as duration string (default: "8s")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between calls (default: "1s")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0)
}

// GeminiConfig contains Google Gemini API configuration.
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model name (default: "gemini-2.0-flash")
	Timeout     string  `toml:"timeout"`     // Call timeout as duration string (default: "8s")
	RateLimit   string  `toml:"rate_limit"`  // Minimum interval between calls (default: "4s" for 15 RPM)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0)
}

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Pipeline: PipelineConfig{
			MinDealAmountUSD: 5_000_000, // $5M minimum deal size
			MaxInputChars:    50_000,
			MaxPromptChars:   12_000,
		},
		LLM: LLMConfig{
			Provider: LLMProviderClaude,
		},
		Claude: ClaudeConfig{
			Model:     "claude-haiku-3-5-20241022",
			MaxTokens: 1024,
			Timeout:   "8s",
			RateLimit: "1s",
		},
		Gemini: GeminiConfig{
			Model:     "gemini-2.0-flash",
			Timeout:   "8s",
			RateLimit: "4s",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 ->
// file2 -> ... -> env. Later files override earlier ones; CLI flag
// overrides are applied separately by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DEALTRIAGE_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("DEALTRIAGE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DEALTRIAGE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if level := os.Getenv("DEALTRIAGE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if minDeal := os.Getenv("DEALTRIAGE_MIN_DEAL_AMOUNT_USD"); minDeal != "" {
		if v, err := strconv.ParseFloat(minDeal, 64); err == nil {
			config.Pipeline.MinDealAmountUSD = v
		}
	}
	if maxInput := os.Getenv("DEALTRIAGE_MAX_INPUT_CHARS"); maxInput != "" {
		if v, err := strconv.Atoi(maxInput); err == nil {
			config.Pipeline.MaxInputChars = v
		}
	}

	if path := os.Getenv("DEALTRIAGE_LEXICON_PATH"); path != "" {
		config.Lexicon.Path = path
	}

	if provider := os.Getenv("DEALTRIAGE_LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = LLMProvider(provider)
	}

	if apiKey := os.Getenv("DEALTRIAGE_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	} else if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if timeout := os.Getenv("DEALTRIAGE_CLAUDE_TIMEOUT"); timeout != "" {
		config.Claude.Timeout = timeout
	}

	if apiKey := os.Getenv("DEALTRIAGE_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	} else if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if timeout := os.Getenv("DEALTRIAGE_GEMINI_TIMEOUT"); timeout != "" {
		config.Gemini.Timeout = timeout
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest
// priority).
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration is serviceable. Called once at
// startup; a failure here is fatal.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	for name, d := range map[string]string{
		"claude.timeout":    c.Claude.Timeout,
		"claude.rate_limit": c.Claude.RateLimit,
		"gemini.timeout":    c.Gemini.Timeout,
		"gemini.rate_limit": c.Gemini.RateLimit,
	} {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid configuration: %s '%s' is not a duration: %w", name, d, err)
		}
	}

	return nil
}
