package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv         = "SENTIMENT_AGENT_CONFIG"
	logLevelEnv           = "SENTIMENT_LOG_LEVEL"
	openRouterAPIKeyEnv   = "OPENROUTER_API_KEY"
	openRouterModelEnv    = "OPENROUTER_MODEL"
	alphaVantageAPIKeyEnv = "ALPHA_VANTAGE_API_KEY"
	redditClientIDEnv     = "REDDIT_CLIENT_ID"
	redditClientSecretEnv = "REDDIT_CLIENT_SECRET"
	redditUserAgentEnv    = "REDDIT_USER_AGENT"
	telegramTokenEnv      = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv     = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging      LoggingConfig      `yaml:"logging"`
	OpenRouter   OpenRouterConfig   `yaml:"openrouter"`
	AlphaVantage AlphaVantageConfig `yaml:"alphaVantage"`
	Reddit       RedditConfig       `yaml:"reddit"`
	Yahoo        YahooConfig        `yaml:"yahoo"`
	Telegram     TelegramConfig     `yaml:"telegram"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// OpenRouterConfig defines how to contact the completion API.
type OpenRouterConfig struct {
	BaseURL     string        `yaml:"baseUrl"`
	APIKey      string        `yaml:"apiKey"`
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	// Referer and Title are optional OpenRouter attribution headers.
	Referer string `yaml:"referer"`
	Title   string `yaml:"title"`
}

// AlphaVantageConfig describes the scored-article provider.
type AlphaVantageConfig struct {
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"apiKey"`
	Timeout  time.Duration `yaml:"timeout"`
}

// RedditConfig wires an app-only OAuth client.
type RedditConfig struct {
	ClientID     string        `yaml:"clientId"`
	ClientSecret string        `yaml:"clientSecret"`
	UserAgent    string        `yaml:"userAgent"`
	TokenURL     string        `yaml:"tokenUrl"`
	APIBaseURL   string        `yaml:"apiBaseUrl"`
	Timeout      time.Duration `yaml:"timeout"`
}

// YahooConfig points at the headline RSS feed.
type YahooConfig struct {
	FeedURL string        `yaml:"feedUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Load reads YAML configuration from path (or the path in
// SENTIMENT_AGENT_CONFIG) and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		// Keys absent from the file keep their defaults; an explicit zero
		// temperature is honoured.
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{logLevelEnv, &c.Logging.Level},
		{openRouterAPIKeyEnv, &c.OpenRouter.APIKey},
		{openRouterModelEnv, &c.OpenRouter.Model},
		{alphaVantageAPIKeyEnv, &c.AlphaVantage.APIKey},
		{redditClientIDEnv, &c.Reddit.ClientID},
		{redditClientSecretEnv, &c.Reddit.ClientSecret},
		{redditUserAgentEnv, &c.Reddit.UserAgent},
		{telegramTokenEnv, &c.Telegram.BotToken},
		{telegramChatIDEnv, &c.Telegram.ChatID},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

// Default returns the built-in configuration without file or env overrides.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		OpenRouter: OpenRouterConfig{
			BaseURL:     "https://openrouter.ai/api/v1",
			Model:       "openai/gpt-4o-mini",
			Temperature: 0.5,
			Timeout:     60 * time.Second,
		},
		AlphaVantage: AlphaVantageConfig{
			Endpoint: "https://www.alphavantage.co/query",
			Timeout:  20 * time.Second,
		},
		Reddit: RedditConfig{
			UserAgent:  "sentimentagent/1.0",
			TokenURL:   "https://www.reddit.com/api/v1/access_token",
			APIBaseURL: "https://oauth.reddit.com",
			Timeout:    20 * time.Second,
		},
		Yahoo: YahooConfig{
			FeedURL: "https://feeds.finance.yahoo.com/rss/2.0/headline",
			Timeout: 20 * time.Second,
		},
	}
}
