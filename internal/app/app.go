package app

import (
	"context"
	"fmt"
	"log/slog"

	"SentimentAgent/internal/config"
	"SentimentAgent/internal/domain"
	"SentimentAgent/internal/infrastructure/alphavantage"
	"SentimentAgent/internal/infrastructure/llm"
	"SentimentAgent/internal/infrastructure/reddit"
	"SentimentAgent/internal/infrastructure/telegram"
	"SentimentAgent/internal/infrastructure/yahoo"
	"SentimentAgent/internal/logging"
	"SentimentAgent/internal/ports"
	"SentimentAgent/internal/source"
	"SentimentAgent/internal/usecase"
)

// Application wires configs to use cases.
type Application struct {
	cfg      config.Config
	registry *source.Registry
	analyzer *usecase.Analyzer
	notifier ports.Notifier
	logger   *slog.Logger
}

// AnalyzeRequest describes one analysis; zero values fall back to configuration.
type AnalyzeRequest struct {
	Ticker      string
	Source      string
	Model       string
	Temperature *float64
}

// SourceStatus reports whether a source kind can be fetched.
type SourceStatus struct {
	Kind      domain.SourceKind
	Intro     string
	Available bool
}

// New builds the application. Only a misconfigured completion client is fatal;
// sources with missing credentials are left unregistered.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	completion, err := llm.NewOpenRouterClient(cfg.OpenRouter)
	if err != nil {
		return nil, fmt.Errorf("completion client: %w", err)
	}

	registry := source.NewRegistry()
	var comments ports.CommentLoader

	if feed, err := yahoo.NewFeedClient(cfg.Yahoo, nil); err != nil {
		warnUnavailable(baseLogger, domain.SourcePlainArticle, err)
	} else {
		registry.Register(feed)
	}

	if av, err := alphavantage.NewClient(cfg.AlphaVantage, nil); err != nil {
		warnUnavailable(baseLogger, domain.SourceScoredArticle, err)
	} else {
		registry.Register(av)
	}

	if rd, err := reddit.NewClient(cfg.Reddit, nil, baseLogger.With("component", "source.reddit")); err != nil {
		warnUnavailable(baseLogger, domain.SourceDiscussion, err)
	} else {
		registry.Register(rd)
		comments = rd
	}

	var notifier ports.Notifier
	if tg, err := telegram.NewNotifier(cfg.Telegram); err == nil {
		notifier = tg
	}

	analyzer := usecase.NewAnalyzer(usecase.AnalyzerDeps{
		Registry:   registry,
		Normalizer: usecase.NewNormalizer(comments, baseLogger.With("component", "normalizer")),
		Completion: completion,
		Logger:     baseLogger.With("component", "analyzer"),
	})

	return &Application{
		cfg:      cfg,
		registry: registry,
		analyzer: analyzer,
		notifier: notifier,
		logger:   baseLogger,
	}, nil
}

// Analyze runs one analysis and attaches the parsed answer when the model
// followed the answer format.
func (a *Application) Analyze(ctx context.Context, req AnalyzeRequest) (domain.Report, error) {
	model := req.Model
	if model == "" {
		model = a.cfg.OpenRouter.Model
	}
	temperature := a.cfg.OpenRouter.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	raw, err := a.analyzer.Analyze(ctx, req.Ticker, req.Source, model, temperature)
	if err != nil {
		return domain.Report{}, err
	}

	kind, _ := domain.ParseSourceKind(req.Source)
	report, err := usecase.NewReport(req.Ticker, kind, model, raw)
	if err != nil {
		a.logger.Warn("answer not parsed", "error", err)
	}
	return report, nil
}

// Publish sends a formatted report to the configured notifier.
func (a *Application) Publish(ctx context.Context, report domain.Report) error {
	if a.notifier == nil {
		return domain.NewConfigurationError("telegram", "botToken/chatId")
	}
	if err := a.notifier.PublishReport(ctx, usecase.FormatReport(report)); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	return nil
}

// Sources lists every kind with its availability.
func (a *Application) Sources() []SourceStatus {
	available := map[domain.SourceKind]bool{}
	for _, kind := range a.registry.Registered() {
		available[kind] = true
	}

	statuses := make([]SourceStatus, 0, len(domain.SourceKinds()))
	for _, kind := range domain.SourceKinds() {
		policy, _ := usecase.PolicyFor(kind)
		statuses = append(statuses, SourceStatus{Kind: kind, Intro: policy.Intro, Available: available[kind]})
	}
	return statuses
}

func warnUnavailable(log *slog.Logger, kind domain.SourceKind, err error) {
	log.Warn("source unavailable", "source", kind, "error", err)
}
