package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"SentimentAgent/internal/config"
	"SentimentAgent/internal/domain"
	"SentimentAgent/internal/ports"
)

const neutralLabel = "Neutral"

// Client fetches scored news from the NEWS_SENTIMENT endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

var _ ports.SourceFetcher = (*Client)(nil)

// NewClient validates credentials and wires an HTTP client.
func NewClient(cfg config.AlphaVantageConfig, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.NewConfigurationError("alphavantage", "apiKey")
	}
	if cfg.Endpoint == "" {
		return nil, domain.NewConfigurationError("alphavantage", "endpoint")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{endpoint: cfg.Endpoint, apiKey: cfg.APIKey, httpClient: httpClient}, nil
}

// Kind identifies the fetcher inside the registry.
func (c *Client) Kind() domain.SourceKind {
	return domain.SourceScoredArticle
}

// Fetch returns the articles mentioning req.Ticker in feed order.
func (c *Client) Fetch(ctx context.Context, req domain.FetchRequest) (domain.SourceBatch, error) {
	pageURL, err := buildQueryURL(c.endpoint, req.Ticker, req.Limit, c.apiKey)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("alphavantage returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var raw newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if msg := raw.problem(); msg != "" {
		return nil, fmt.Errorf("alphavantage api: %s", msg)
	}

	batch := make(domain.SourceBatch, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		batch = append(batch, toScoredArticle(item, req.Ticker))
	}
	return batch, nil
}

func toScoredArticle(item feedItem, ticker string) domain.ScoredArticle {
	label := item.OverallSentimentLabel
	if label == "" {
		label = neutralLabel
	}

	tickerLabel := neutralLabel
	for _, ts := range item.TickerSentiment {
		if strings.EqualFold(ts.Ticker, ticker) {
			if ts.Label != "" {
				tickerLabel = ts.Label
			}
			break
		}
	}

	return domain.ScoredArticle{
		Title:                item.Title,
		Summary:              item.Summary,
		URL:                  item.URL,
		SentimentLabel:       label,
		SentimentScore:       float64(item.OverallSentimentScore),
		TickerSentimentLabel: tickerLabel,
	}
}

func buildQueryURL(endpoint, ticker string, limit int, apiKey string) (string, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid alphavantage endpoint %s: %w", endpoint, err)
	}

	query := parsed.Query()
	query.Set("function", "NEWS_SENTIMENT")
	query.Set("tickers", ticker)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	query.Set("apikey", apiKey)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

type newsResponse struct {
	Feed         []feedItem `json:"feed"`
	ErrorMessage string     `json:"Error Message"`
	Note         string     `json:"Note"`
	Information  string     `json:"Information"`
}

// problem returns the message of an error, throttling or informational payload.
func (r newsResponse) problem() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	case r.Information != "" && len(r.Feed) == 0:
		return r.Information
	default:
		return ""
	}
}

type feedItem struct {
	Title                 string            `json:"title"`
	Summary               string            `json:"summary"`
	URL                   string            `json:"url"`
	OverallSentimentScore flexFloat         `json:"overall_sentiment_score"`
	OverallSentimentLabel string            `json:"overall_sentiment_label"`
	TickerSentiment       []tickerSentiment `json:"ticker_sentiment"`
}

type tickerSentiment struct {
	Ticker string    `json:"ticker"`
	Score  flexFloat `json:"ticker_sentiment_score"`
	Label  string    `json:"ticker_sentiment_label"`
}

// flexFloat accepts both JSON numbers and numeric strings; anything else is zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	text := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if text == "" || text == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}
