package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SentimentAgent/internal/config"
	"SentimentAgent/internal/domain"
)

func TestNewNotifierRequiresChat(t *testing.T) {
	t.Parallel()

	_, err := NewNotifier(config.TelegramConfig{BotToken: "token"})

	assert.True(t, domain.IsConfigurationError(err))
}

func TestPublishReport(t *testing.T) {
	t.Parallel()

	var (
		path string
		form url.Values
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.NoError(t, r.ParseForm())
		form = r.PostForm
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	notifier, err := NewNotifier(config.TelegramConfig{BotToken: "123:abc", ChatID: "-100"})
	require.NoError(t, err)
	notifier.apiBase = server.URL
	notifier.client = server.Client()

	require.NoError(t, notifier.PublishReport(context.Background(), "*AAPL* sentiment"))

	assert.Equal(t, "/bot123:abc/sendMessage", path)
	assert.Equal(t, "-100", form.Get("chat_id"))
	assert.Equal(t, "*AAPL* sentiment", form.Get("text"))
	assert.Equal(t, "Markdown", form.Get("parse_mode"))
}

func TestPublishReportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	notifier, err := NewNotifier(config.TelegramConfig{BotToken: "t", ChatID: "c"})
	require.NoError(t, err)
	notifier.apiBase = server.URL
	notifier.client = server.Client()

	err = notifier.PublishReport(context.Background(), "hi")
	assert.ErrorContains(t, err, "chat not found")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("é", telegramLimit+10)
	out := truncate(long, telegramLimit)

	assert.Equal(t, telegramLimit, utf8.RuneCountInString(out))
	assert.True(t, strings.HasSuffix(out, "…"))
	assert.Equal(t, "short", truncate("short", telegramLimit))
}
