package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"SentimentAgent/internal/config"
	"SentimentAgent/internal/domain"
	"SentimentAgent/internal/ports"
)

// Client searches subreddits through the OAuth API using app-only credentials.
type Client struct {
	apiBase string
	http    *http.Client
	logger  *slog.Logger
}

var (
	_ ports.SourceFetcher = (*Client)(nil)
	_ ports.CommentLoader = (*Client)(nil)
)

// NewClient validates credentials and builds an authenticated HTTP client.
// base, when set, supplies the transport and timeout for both token and API calls.
func NewClient(cfg config.RedditConfig, base *http.Client, log *slog.Logger) (*Client, error) {
	switch {
	case strings.TrimSpace(cfg.ClientID) == "":
		return nil, domain.NewConfigurationError("reddit", "clientId")
	case strings.TrimSpace(cfg.ClientSecret) == "":
		return nil, domain.NewConfigurationError("reddit", "clientSecret")
	case strings.TrimSpace(cfg.UserAgent) == "":
		return nil, domain.NewConfigurationError("reddit", "userAgent")
	case cfg.TokenURL == "" || cfg.APIBaseURL == "":
		return nil, domain.NewConfigurationError("reddit", "tokenUrl/apiBaseUrl")
	}

	if base == nil {
		base = &http.Client{Timeout: cfg.Timeout}
	}
	tokenClient := &http.Client{
		Timeout:   base.Timeout,
		Transport: &userAgentTransport{agent: cfg.UserAgent, next: base.Transport},
	}

	credentials := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, tokenClient)
	apiClient := credentials.Client(ctx)
	apiClient.Timeout = base.Timeout

	return &Client{
		apiBase: strings.TrimSuffix(cfg.APIBaseURL, "/"),
		http:    apiClient,
		logger:  log,
	}, nil
}

// Kind identifies the fetcher inside the registry.
func (c *Client) Kind() domain.SourceKind {
	return domain.SourceDiscussion
}

// Fetch searches every subreddit in order and concatenates the results. A
// failing subreddit is skipped; the call fails only when all of them fail.
func (c *Client) Fetch(ctx context.Context, req domain.FetchRequest) (domain.SourceBatch, error) {
	if len(req.Subreddits) == 0 {
		return nil, fmt.Errorf("no subreddits provided")
	}
	query := searchQuery(req)

	var (
		batch domain.SourceBatch
		errs  []error
	)
	for _, sub := range req.Subreddits {
		posts, err := c.search(ctx, sub, query, req.TimeWindow, req.Limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("subreddit %s: %w", sub, err))
			c.warn("subreddit search failed", "subreddit", sub, "error", err)
			continue
		}
		c.debug("subreddit searched", "subreddit", sub, "posts", len(posts))
		batch = append(batch, posts...)
	}

	if len(errs) == len(req.Subreddits) {
		return nil, errors.Join(errs...)
	}
	return batch, nil
}

// TopComment returns the body of the highest ranked comment, or "" when the
// thread has none.
func (c *Client) TopComment(ctx context.Context, postID string) (string, error) {
	params := url.Values{}
	params.Set("sort", "top")
	params.Set("limit", "1")
	params.Set("depth", "1")
	params.Set("raw_json", "1")

	var listings []listing
	if err := c.get(ctx, "/comments/"+url.PathEscape(postID), params, &listings); err != nil {
		return "", err
	}
	if len(listings) < 2 {
		return "", nil
	}

	for _, child := range listings[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		var comment commentData
		if err := json.Unmarshal(child.Data, &comment); err != nil {
			return "", fmt.Errorf("decode comment: %w", err)
		}
		return comment.Body, nil
	}
	return "", nil
}

func (c *Client) search(ctx context.Context, subreddit, query, window string, limit int) ([]domain.SourceItem, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "1")
	params.Set("sort", "relevance")
	params.Set("raw_json", "1")
	if window != "" {
		params.Set("t", window)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var result listing
	if err := c.get(ctx, "/r/"+url.PathEscape(subreddit)+"/search", params, &result); err != nil {
		return nil, err
	}

	posts := make([]domain.SourceItem, 0, len(result.Data.Children))
	for _, child := range result.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		var post postData
		if err := json.Unmarshal(child.Data, &post); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, domain.DiscussionPost{
			ID:        post.ID,
			Title:     post.Title,
			Body:      post.Selftext,
			Permalink: post.Permalink,
			Subreddit: post.Subreddit,
		})
		if limit > 0 && len(posts) == limit {
			break
		}
	}
	return posts, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	endpoint := c.apiBase + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("reddit returned %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func searchQuery(req domain.FetchRequest) string {
	terms := req.Terms
	if len(terms) == 0 {
		terms = []string{req.Ticker}
	}
	return strings.Join(terms, " OR ")
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

// userAgentTransport sets the descriptive User-Agent Reddit requires on every call.
type userAgentTransport struct {
	agent string
	next  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.agent)
	return next.RoundTrip(clone)
}

type listing struct {
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type postData struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Selftext  string `json:"selftext"`
	Permalink string `json:"permalink"`
	Subreddit string `json:"subreddit"`
}

type commentData struct {
	Body string `json:"body"`
}
