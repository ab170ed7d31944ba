package usecase

import (
	"fmt"
	"strings"

	"SentimentAgent/internal/domain"
)

// scoreLegend maps the scored-article provider's continuous score to its labels.
const scoreLegend = `≤ -0.35           → Bearish
-0.35 to -0.05     → Somewhat-Bearish
-0.05 to 0.05      → Neutral
0.05 to 0.35       → Somewhat-Bullish
≥ 0.35            → Bullish`

// SourcePolicy carries everything that differs between source kinds.
type SourcePolicy struct {
	Kind         domain.SourceKind
	Intro        string
	ProviderName string
	// Legend is rendered only when non-empty.
	Legend string

	Subreddits []string
	TimeWindow string
	Limit      int
	// MaxItems caps the batch after fetch; zero disables the cap.
	MaxItems int
}

var policies = map[domain.SourceKind]SourcePolicy{
	domain.SourcePlainArticle: {
		Kind:         domain.SourcePlainArticle,
		Intro:        "news articles about a market from Yahoo Finance",
		ProviderName: "Yahoo Finance",
		Limit:        10,
	},
	domain.SourceScoredArticle: {
		Kind:         domain.SourceScoredArticle,
		Intro:        "news articles about a market from Alpha Vantage",
		ProviderName: "Alpha Vantage",
		Legend:       scoreLegend,
		Limit:        20,
		MaxItems:     20,
	},
	domain.SourceDiscussion: {
		Kind:         domain.SourceDiscussion,
		Intro:        "Reddit posts about a market from Reddit",
		ProviderName: "Reddit",
		Subreddits:   []string{"stocks", "investing", "wallstreetbets"},
		TimeWindow:   "month",
		Limit:        7,
	},
}

// PolicyFor returns the policy record of a kind.
func PolicyFor(kind domain.SourceKind) (SourcePolicy, bool) {
	p, ok := policies[kind]
	return p, ok
}

// FetchRequest derives the fetcher parameters for a ticker.
func (p SourcePolicy) FetchRequest(ticker string) domain.FetchRequest {
	req := domain.FetchRequest{
		Ticker:     ticker,
		TimeWindow: p.TimeWindow,
		Limit:      p.Limit,
	}
	if len(p.Subreddits) > 0 {
		req.Subreddits = append([]string(nil), p.Subreddits...)
		req.Terms = searchTerms(ticker)
	}
	return req
}

// SentimentField is the label used for provider scores inside a rendered block.
func (p SourcePolicy) SentimentField() string {
	return strings.ToUpper(p.Kind.String()) + "_SENTIMENT"
}

func searchTerms(ticker string) []string {
	return []string{ticker, strings.ToLower(ticker), fmt.Sprintf("$%s", ticker)}
}
