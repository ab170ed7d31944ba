package usecase

import (
	"fmt"
	"strings"

	"SentimentAgent/internal/domain"
)

// NewReport attaches the parsed answer to a completion when it can be read.
func NewReport(ticker string, kind domain.SourceKind, model string, raw domain.SentimentResult) (domain.Report, error) {
	report := domain.Report{
		Ticker: strings.ToUpper(strings.TrimSpace(ticker)),
		Source: kind,
		Model:  model,
		Raw:    raw,
	}

	answer, err := ParseAnswer(string(raw))
	if err != nil {
		return report, err
	}
	report.Answer = &answer
	return report, nil
}

// FormatReport renders a report as a short Markdown message.
func FormatReport(report domain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s* sentiment from %s\n", report.Ticker, report.Source)
	if report.Model != "" {
		fmt.Fprintf(&b, "Model: %s\n", report.Model)
	}

	if report.Answer == nil {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(string(report.Raw)))
		return b.String()
	}

	fmt.Fprintf(&b, "Overall sentiment: %s/10\n", report.Answer.OverallSentimentScore)
	fmt.Fprintf(&b, "Opinion diversity: %s/10\n\n", report.Answer.OpinionDiversityScore)
	b.WriteString(strings.TrimSpace(report.Answer.Summary))
	return b.String()
}
