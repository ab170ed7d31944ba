package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"SentimentAgent/internal/domain"
	"SentimentAgent/internal/ports"
	"SentimentAgent/internal/source"
)

// Stage names a step of one analysis run.
type Stage string

const (
	StageIdle        Stage = "idle"
	StageFetching    Stage = "fetching"
	StageNormalizing Stage = "normalizing"
	StageBuilding    Stage = "building"
	StageCompleting  Stage = "completing"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// AnalyzerDeps wires the driven adapters into the orchestrator.
type AnalyzerDeps struct {
	Registry   *source.Registry
	Normalizer *Normalizer
	Completion ports.CompletionClient
	Logger     *slog.Logger
}

// Analyzer implements the fetch, normalize, build and complete workflow.
type Analyzer struct {
	registry   *source.Registry
	normalizer *Normalizer
	completion ports.CompletionClient
	logger     *slog.Logger
}

// NewAnalyzer constructs the orchestration component.
func NewAnalyzer(deps AnalyzerDeps) *Analyzer {
	normalizer := deps.Normalizer
	if normalizer == nil {
		normalizer = NewNormalizer(nil, deps.Logger)
	}
	return &Analyzer{
		registry:   deps.Registry,
		normalizer: normalizer,
		completion: deps.Completion,
		logger:     deps.Logger,
	}
}

// Analyze fetches items about ticker from the named source and returns the
// raw model completion. Only an unknown source and a failed completion are
// errors; an unavailable or empty source yields a prompt with no items.
func (a *Analyzer) Analyze(ctx context.Context, ticker, sourceName, model string, temperature float64) (domain.SentimentResult, error) {
	log := a.runLogger(ticker, sourceName)
	log.Debug("analysis stage", "stage", StageIdle)

	kind, err := domain.ParseSourceKind(sourceName)
	if err != nil {
		log.Debug("analysis stage", "stage", StageFailed, "error", err)
		return "", err
	}
	policy, _ := PolicyFor(kind)
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	log.Debug("analysis stage", "stage", StageFetching)
	batch := a.fetch(ctx, log, policy, ticker)
	if policy.MaxItems > 0 && len(batch) > policy.MaxItems {
		log.Debug("batch truncated", "fetched", len(batch), "cap", policy.MaxItems)
		batch = batch.Truncate(policy.MaxItems)
	}

	log.Debug("analysis stage", "stage", StageNormalizing, "items", len(batch))
	blocks := a.normalizer.Normalize(ctx, batch, kind)

	log.Debug("analysis stage", "stage", StageBuilding, "blocks", len(blocks))
	spec := BuildPrompt(blocks, ticker, kind, model, temperature)

	log.Debug("analysis stage", "stage", StageCompleting, "model", spec.Model, "temperature", spec.Temperature)
	if a.completion == nil {
		return "", fmt.Errorf("%w: completion client is not configured", domain.ErrCompletionFailed)
	}
	result, err := a.completion.Complete(ctx, spec)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrCompletionFailed, err)
	}

	log.Debug("analysis stage", "stage", StageDone, "chars", len(result))
	return result, nil
}

func (a *Analyzer) fetch(ctx context.Context, log *slog.Logger, policy SourcePolicy, ticker string) domain.SourceBatch {
	fetcher, err := a.registry.Resolve(policy.Kind)
	if err != nil {
		log.Warn("fetch degraded", "error", fmt.Errorf("%w: %w", domain.ErrFetchDegraded, err))
		return nil
	}

	batch, err := fetcher.Fetch(ctx, policy.FetchRequest(ticker))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug("fetch canceled", "error", err)
		} else {
			log.Warn("fetch degraded", "error", fmt.Errorf("%w: %w", domain.ErrFetchDegraded, err))
		}
		return nil
	}
	if len(batch) == 0 {
		log.Warn("fetch degraded", "error", fmt.Errorf("%w: no items", domain.ErrFetchDegraded))
	}
	return batch
}

func (a *Analyzer) runLogger(ticker, sourceName string) *slog.Logger {
	base := a.logger
	if base == nil {
		base = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return base.With("run_id", uuid.NewString(), "ticker", ticker, "source", sourceName)
}
