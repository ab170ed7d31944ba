package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		configPathEnv, logLevelEnv, openRouterAPIKeyEnv, openRouterModelEnv, alphaVantageAPIKeyEnv,
		redditClientIDEnv, redditClientSecretEnv, redditUserAgentEnv, telegramTokenEnv, telegramChatIDEnv,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouter.BaseURL)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.OpenRouter.Model)
	assert.Equal(t, 0.5, cfg.OpenRouter.Temperature)
	assert.Equal(t, "https://www.alphavantage.co/query", cfg.AlphaVantage.Endpoint)
	assert.Equal(t, "https://oauth.reddit.com", cfg.Reddit.APIBaseURL)
	assert.Empty(t, cfg.OpenRouter.APIKey)
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
logging:
  level: debug
openrouter:
  model: anthropic/claude-3.5-haiku
  apiKey: from-file
  timeout: 90s
reddit:
  clientId: file-client
yahoo:
  feedUrl: http://localhost/rss
`)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv(openRouterAPIKeyEnv, "from-env")
	t.Setenv(redditClientSecretEnv, "shh")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "anthropic/claude-3.5-haiku", cfg.OpenRouter.Model)
	assert.Equal(t, "from-env", cfg.OpenRouter.APIKey)
	assert.Equal(t, 90*time.Second, cfg.OpenRouter.Timeout)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouter.BaseURL)
	assert.Equal(t, "file-client", cfg.Reddit.ClientID)
	assert.Equal(t, "shh", cfg.Reddit.ClientSecret)
	assert.Equal(t, "sentimentagent/1.0", cfg.Reddit.UserAgent)
	assert.Equal(t, "http://localhost/rss", cfg.Yahoo.FeedURL)
}

func TestLoadKeepsExplicitZeroTemperature(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openrouter:\n  temperature: 0\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Zero(t, cfg.OpenRouter.Temperature)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.OpenRouter.Model)
}

func TestLoadExplicitPathWins(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("telegram:\n  chatId: \"42\"\n"), 0o600))
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openrouter: [unclosed"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "parse config")
}
