// Package config loads the typed application configuration from viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/marisol-health/frontdesk/internal/common"
	"github.com/marisol-health/frontdesk/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	Provider  Provider
	Auth      Auth
	RateLimit RateLimit
	Server    Server
}

// Provider selects and configures the LLM backend.
type Provider struct {
	Name         string
	OpenAIKey    string
	OpenAIModel  string
	AnthropicKey string
	AnthropicModel string
	Timeout      time.Duration
	Temperature  float64
	MaxTokens    int
}

// Auth configures inbound API-key authentication. An empty key list
// disables auth, which is useful for local development.
type Auth struct {
	APIKeys []string
}

// Enabled reports whether inbound auth is required.
func (a Auth) Enabled() bool {
	return len(a.APIKeys) > 0
}

// RateLimit configures the sliding-window admission limiter.
type RateLimit struct {
	Enabled     bool
	MaxRequests int
	Window      time.Duration
}

// Server configures the HTTP listener.
type Server struct {
	Addr string
}

// SetDefaults registers default values on the global viper instance. Call
// once before Load.
func SetDefaults() {
	viper.SetDefault("provider.name", "openai")
	viper.SetDefault("provider.timeout", 60*time.Second)
	viper.SetDefault("provider.temperature", 0.1)
	viper.SetDefault("provider.max_tokens", 1024)
	viper.SetDefault("openai.model", "gpt-4o")
	viper.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("auth.api_keys", "")
	viper.SetDefault("ratelimit.enabled", true)
	viper.SetDefault("ratelimit.max_requests", 20)
	viper.SetDefault("ratelimit.window", time.Minute)
	viper.SetDefault("server.addr", ":8080")
}

// Load reads the configuration from viper and validates it.
func Load() (Config, error) {
	cfg := Config{
		Provider: Provider{
			Name:           strings.ToLower(viper.GetString("provider.name")),
			OpenAIKey:      viper.GetString("openai.api_key"),
			OpenAIModel:    viper.GetString("openai.model"),
			AnthropicKey:   viper.GetString("anthropic.api_key"),
			AnthropicModel: viper.GetString("anthropic.model"),
			Timeout:        viper.GetDuration("provider.timeout"),
			Temperature:    viper.GetFloat64("provider.temperature"),
			MaxTokens:      viper.GetInt("provider.max_tokens"),
		},
		Auth: Auth{
			APIKeys: splitKeys(viper.GetString("auth.api_keys")),
		},
		RateLimit: RateLimit{
			Enabled:     viper.GetBool("ratelimit.enabled"),
			MaxRequests: viper.GetInt("ratelimit.max_requests"),
			Window:      viper.GetDuration("ratelimit.window"),
		},
		Server: Server{
			Addr: viper.GetString("server.addr"),
		},
	}

	switch cfg.Provider.Name {
	case "openai", "anthropic":
	default:
		return Config{}, fmt.Errorf("%w: unsupported provider %q", common.ErrInvalidConfig, cfg.Provider.Name)
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.MaxRequests <= 0 {
			return Config{}, fmt.Errorf("%w: ratelimit.max_requests must be positive", common.ErrInvalidConfig)
		}
		if cfg.RateLimit.Window <= 0 {
			return Config{}, fmt.Errorf("%w: ratelimit.window must be positive", common.ErrInvalidConfig)
		}
	}

	return cfg, nil
}

// LLM builds the client configuration for the selected provider.
func (c Config) LLM() llm.Config {
	cfg := llm.Config{
		Provider:    c.Provider.Name,
		Temperature: c.Provider.Temperature,
		MaxTokens:   c.Provider.MaxTokens,
		Timeout:     c.Provider.Timeout,
	}
	switch c.Provider.Name {
	case "anthropic":
		cfg.APIKey = c.Provider.AnthropicKey
		cfg.Model = c.Provider.AnthropicModel
	default:
		cfg.APIKey = c.Provider.OpenAIKey
		cfg.Model = c.Provider.OpenAIModel
	}
	return cfg
}

// splitKeys parses a comma-separated key list, dropping empty entries.
func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
