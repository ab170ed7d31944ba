package ports

import (
	"context"

	"SentimentAgent/internal/domain"
)

// SourceFetcher pulls raw items about a ticker from one upstream provider.
type SourceFetcher interface {
	Kind() domain.SourceKind
	Fetch(ctx context.Context, req domain.FetchRequest) (domain.SourceBatch, error)
}

// CommentLoader resolves the top comment of a discussion post.
type CommentLoader interface {
	TopComment(ctx context.Context, postID string) (string, error)
}

// CompletionClient sends one prompt to an LLM backend and returns its text.
type CompletionClient interface {
	Complete(ctx context.Context, spec domain.PromptSpec) (domain.SentimentResult, error)
}

// Notifier streams finished reports to Telegram or other channels.
type Notifier interface {
	PublishReport(ctx context.Context, message string) error
}
