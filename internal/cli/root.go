package cli

import (
	"context"

	"github.com/spf13/cobra"

	"SentimentAgent/internal/app"
	"SentimentAgent/internal/config"
	"SentimentAgent/internal/domain"
	"SentimentAgent/internal/logging"
)

// Service is what the commands need from the application.
type Service interface {
	Analyze(ctx context.Context, req app.AnalyzeRequest) (domain.Report, error)
	Publish(ctx context.Context, report domain.Report) error
	Sources() []app.SourceStatus
}

var (
	configPath string
	logLevel   string

	// newService is replaced in tests.
	newService = buildService
)

var rootCmd = &cobra.Command{
	Use:   "sentimentagent",
	Short: "Market sentiment from news and discussions",
	Long: `Collects recent items about a ticker from one source, renders them into a
prompt and asks a language model for a sentiment report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (defaults to $SENTIMENT_AGENT_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func buildService() (Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return app.New(cfg, logging.New(cfg.Logging.Level))
}
