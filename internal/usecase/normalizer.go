package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"SentimentAgent/internal/domain"
	"SentimentAgent/internal/ports"
)

// Normalizer renders heterogeneous source items into numbered prompt blocks.
type Normalizer struct {
	comments ports.CommentLoader
	logger   *slog.Logger
}

// NewNormalizer wires an optional comment loader used for discussion posts.
func NewNormalizer(comments ports.CommentLoader, logger *slog.Logger) *Normalizer {
	return &Normalizer{comments: comments, logger: logger}
}

// Normalize renders every item of the batch in order. It never fails: missing
// or unloadable fields become empty strings.
func (n *Normalizer) Normalize(ctx context.Context, batch domain.SourceBatch, kind domain.SourceKind) []domain.RenderedBlock {
	blocks := make([]domain.RenderedBlock, 0, len(batch))
	for i, item := range batch {
		index := i + 1
		blocks = append(blocks, domain.RenderedBlock{
			Index: index,
			Text:  n.render(ctx, index, item, kind),
		})
	}
	return blocks
}

func (n *Normalizer) render(ctx context.Context, index int, item domain.SourceItem, kind domain.SourceKind) string {
	switch v := item.(type) {
	case domain.DiscussionPost:
		return fmt.Sprintf("POST %d\nTITLE: %s\nBODY: %s\nTOP_COMMENT: %s\n---",
			index, v.Title, v.Body, n.topComment(ctx, v))
	case domain.ScoredArticle:
		return fmt.Sprintf("POST %d\nTITLE: %s\nSUMMARY: %s\n%s: %s (score %s)\n---",
			index, v.Title, v.Summary, sentimentField(kind), v.SentimentLabel, formatScore(v.SentimentScore))
	case domain.PlainArticle:
		return fmt.Sprintf("POST %d\nTITLE: %s\nSUMMARY: %s\n---", index, v.Title, v.Summary)
	default:
		return fmt.Sprintf("POST %d\n---", index)
	}
}

func (n *Normalizer) topComment(ctx context.Context, post domain.DiscussionPost) string {
	if post.TopComment != nil {
		return *post.TopComment
	}
	if n == nil || n.comments == nil || post.ID == "" {
		return ""
	}

	comment, err := n.comments.TopComment(ctx, post.ID)
	if err != nil {
		n.warn("top comment unavailable", "post_id", post.ID, "error", err)
		return ""
	}
	return comment
}

func (n *Normalizer) warn(msg string, args ...any) {
	if n != nil && n.logger != nil {
		n.logger.Warn(msg, args...)
	}
}

func sentimentField(kind domain.SourceKind) string {
	if p, ok := PolicyFor(kind); ok {
		return p.SentimentField()
	}
	return strings.ToUpper(kind.String()) + "_SENTIMENT"
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
