package yahoo

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"SentimentAgent/internal/config"
	"SentimentAgent/internal/domain"
	"SentimentAgent/internal/ports"
)

// FeedClient reads the per-ticker headline RSS feed.
type FeedClient struct {
	feedURL string
	client  *http.Client
}

var _ ports.SourceFetcher = (*FeedClient)(nil)

// NewFeedClient wires an HTTP client; the feed needs no credentials.
func NewFeedClient(cfg config.YahooConfig, client *http.Client) (*FeedClient, error) {
	if cfg.FeedURL == "" {
		return nil, domain.NewConfigurationError("yahoo", "feedUrl")
	}
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &FeedClient{feedURL: cfg.FeedURL, client: client}, nil
}

// Kind identifies the fetcher inside the registry.
func (f *FeedClient) Kind() domain.SourceKind {
	return domain.SourcePlainArticle
}

// Fetch returns at most req.Limit headlines in feed order.
func (f *FeedClient) Fetch(ctx context.Context, req domain.FetchRequest) (domain.SourceBatch, error) {
	feedURL, err := buildFeedURL(f.feedURL, req.Ticker)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "SentimentAgent/1.0")

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned %s", resp.Status)
	}

	var doc rssDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := doc.Channel.Items
	if req.Limit > 0 && len(items) > req.Limit {
		items = items[:req.Limit]
	}

	batch := make(domain.SourceBatch, 0, len(items))
	for _, item := range items {
		batch = append(batch, domain.PlainArticle{
			Title:   plainText(item.Title),
			Summary: plainText(item.Description),
			URL:     strings.TrimSpace(item.Link),
		})
	}
	return batch, nil
}

// plainText strips markup some publishers embed in titles and descriptions.
func plainText(value string) string {
	value = strings.TrimSpace(value)
	if !strings.Contains(value, "<") && !strings.Contains(value, "&") {
		return value
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
	if err != nil {
		return value
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func buildFeedURL(base, ticker string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid feed url %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set("s", ticker)
	query.Set("region", "US")
	query.Set("lang", "en-US")
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

type rssDocument struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
}
