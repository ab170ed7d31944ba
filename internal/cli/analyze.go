package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"SentimentAgent/internal/app"
	"SentimentAgent/internal/domain"
)

var (
	analyzeSource      string
	analyzeModel       string
	analyzeTemperature float64
	analyzeJSON        bool
	analyzeNotify      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "Analyze sentiment for a ticker",
	Long: `Fetches items for the ticker from the chosen source (yahoo, alpha or reddit)
and prints the model's sentiment report. A source that cannot be fetched is
analyzed with an empty item list.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeSource, "source", "s", string(domain.SourcePlainArticle), "source: yahoo, alpha or reddit")
	analyzeCmd.Flags().StringVarP(&analyzeModel, "model", "m", "", "model identifier (defaults to config)")
	analyzeCmd.Flags().Float64VarP(&analyzeTemperature, "temperature", "t", 0.5, "sampling temperature in [0,1] (defaults to config)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the report as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeNotify, "notify", false, "also send the report to Telegram")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	service, err := newService()
	if err != nil {
		return err
	}

	req := app.AnalyzeRequest{
		Ticker: args[0],
		Source: analyzeSource,
		Model:  analyzeModel,
	}
	if cmd.Flags().Changed("temperature") {
		temperature := analyzeTemperature
		req.Temperature = &temperature
	}

	ctx := cmd.Context()
	report, err := service.Analyze(ctx, req)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", args[0], err)
	}

	if analyzeJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), string(report.Raw))
	}

	if analyzeNotify {
		if err := service.Publish(ctx, report); err != nil {
			return err
		}
		cmd.PrintErrln("Report sent to Telegram.")
	}
	return nil
}
