package domain

import (
	"fmt"
	"strings"
)

// SourceKind names the external provider that supplied a batch.
type SourceKind string

const (
	SourceDiscussion    SourceKind = "reddit"
	SourceScoredArticle SourceKind = "alpha"
	SourcePlainArticle  SourceKind = "yahoo"
)

// SourceKinds lists every supported kind in a stable order.
func SourceKinds() []SourceKind {
	return []SourceKind{SourcePlainArticle, SourceScoredArticle, SourceDiscussion}
}

// ParseSourceKind maps a user-supplied identifier to a known kind.
func ParseSourceKind(value string) (SourceKind, error) {
	kind := SourceKind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, value)
	}
	return kind, nil
}

// Valid reports whether the kind is one of the supported sources.
func (k SourceKind) Valid() bool {
	switch k {
	case SourceDiscussion, SourceScoredArticle, SourcePlainArticle:
		return true
	default:
		return false
	}
}

func (k SourceKind) String() string {
	return string(k)
}

// SourceItem is one record produced by a fetcher. The concrete type is fixed by
// the adapter that built it; the set of variants is closed.
type SourceItem interface {
	Kind() SourceKind
	sourceItem()
}

// DiscussionPost is a social discussion thread. TopComment is nil when the
// comment has not been loaded yet.
type DiscussionPost struct {
	ID         string
	Title      string
	Body       string
	Permalink  string
	Subreddit  string
	TopComment *string
}

// ScoredArticle is a news article carrying a provider sentiment score.
type ScoredArticle struct {
	Title          string
	Summary        string
	URL            string
	SentimentLabel string
	SentimentScore float64
	// TickerSentimentLabel is the provider label for the requested ticker only.
	TickerSentimentLabel string
}

// PlainArticle is a news article without any sentiment annotation.
type PlainArticle struct {
	Title   string
	Summary string
	URL     string
}

func (DiscussionPost) Kind() SourceKind { return SourceDiscussion }
func (ScoredArticle) Kind() SourceKind  { return SourceScoredArticle }
func (PlainArticle) Kind() SourceKind   { return SourcePlainArticle }

func (DiscussionPost) sourceItem() {}
func (ScoredArticle) sourceItem()  {}
func (PlainArticle) sourceItem()   {}

// SourceBatch is the ordered output of one fetch. Empty is a valid state.
type SourceBatch []SourceItem

// Truncate keeps the first n items in fetch order.
func (b SourceBatch) Truncate(n int) SourceBatch {
	if n < 0 || len(b) <= n {
		return b
	}
	return b[:n]
}

// RenderedBlock is the numbered text of a single item inside the prompt.
type RenderedBlock struct {
	Index int
	Text  string
}

// PromptSpec fully determines one completion call.
type PromptSpec struct {
	SystemPrompt string
	UserPrompt   string
	Model        string
	Temperature  float64
}

// SentimentResult is the raw completion text returned by the model.
type SentimentResult string

// FetchRequest carries the policy parameters handed to a fetcher.
type FetchRequest struct {
	Ticker     string
	Subreddits []string
	Terms      []string
	TimeWindow string
	Limit      int
}
