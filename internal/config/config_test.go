package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider.Name)
	assert.Equal(t, 60*time.Second, cfg.Provider.Timeout)
	assert.InDelta(t, 0.1, cfg.Provider.Temperature, 1e-9)
	assert.Equal(t, 1024, cfg.Provider.MaxTokens)
	assert.Equal(t, "gpt-4o", cfg.Provider.OpenAIModel)

	assert.False(t, cfg.Auth.Enabled())
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20, cfg.RateLimit.MaxRequests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadAnthropicProvider(t *testing.T) {
	resetViper(t)
	viper.Set("provider.name", "Anthropic")
	viper.Set("anthropic.api_key", "sk-ant-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider.Name)

	llmCfg := cfg.LLM()
	assert.Equal(t, "anthropic", llmCfg.Provider)
	assert.Equal(t, "sk-ant-test", llmCfg.APIKey)
	assert.Equal(t, "claude-sonnet-4-5-20250929", llmCfg.Model)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	resetViper(t)
	viper.Set("provider.name", "cohere")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	resetViper(t)
	viper.Set("ratelimit.max_requests", 0)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRateLimitDisabledSkipsValidation(t *testing.T) {
	resetViper(t)
	viper.Set("ratelimit.enabled", false)
	viper.Set("ratelimit.max_requests", 0)

	_, err := Load()
	assert.NoError(t, err)
}

func TestAuthKeysParsing(t *testing.T) {
	resetViper(t)
	viper.Set("auth.api_keys", "key-one, key-two,,key-three ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, []string{"key-one", "key-two", "key-three"}, cfg.Auth.APIKeys)
}
