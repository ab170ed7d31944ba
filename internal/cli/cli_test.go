package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SentimentAgent/internal/app"
	"SentimentAgent/internal/domain"
)

type fakeService struct {
	requests   []app.AnalyzeRequest
	published  []domain.Report
	analyzeErr error
	publishErr error
}

func (f *fakeService) Analyze(_ context.Context, req app.AnalyzeRequest) (domain.Report, error) {
	f.requests = append(f.requests, req)
	if f.analyzeErr != nil {
		return domain.Report{}, f.analyzeErr
	}
	return domain.Report{
		Ticker: "AAPL",
		Source: domain.SourcePlainArticle,
		Model:  "openai/gpt-4o-mini",
		Raw:    "<answer>{}</answer>",
	}, nil
}

func (f *fakeService) Publish(_ context.Context, report domain.Report) error {
	f.published = append(f.published, report)
	return f.publishErr
}

func (f *fakeService) Sources() []app.SourceStatus {
	return []app.SourceStatus{
		{Kind: domain.SourcePlainArticle, Intro: "news articles", Available: true},
		{Kind: domain.SourceDiscussion, Intro: "Reddit posts", Available: false},
	}
}

func setupTestService(t *testing.T) *fakeService {
	t.Helper()

	fake := &fakeService{}
	old := newService
	newService = func() (Service, error) { return fake, nil }
	t.Cleanup(func() {
		newService = old
		resetFlags()
	})
	return fake
}

func resetFlags() {
	analyzeSource = string(domain.SourcePlainArticle)
	analyzeModel = ""
	analyzeTemperature = 0.5
	analyzeJSON = false
	analyzeNotify = false
	analyzeCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	rootCmd.SetArgs(nil)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyzeCmd_RequiresTicker(t *testing.T) {
	setupTestService(t)

	_, err := execute(t, "analyze")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAnalyzeCmd_Flags(t *testing.T) {
	source := analyzeCmd.Flags().Lookup("source")
	require.NotNil(t, source)
	assert.Equal(t, "yahoo", source.DefValue)
	assert.Equal(t, "s", source.Shorthand)

	require.NotNil(t, analyzeCmd.Flags().Lookup("model"))
	require.NotNil(t, analyzeCmd.Flags().Lookup("temperature"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("log-level"))
}

func TestAnalyzeCmd_PrintsRawResult(t *testing.T) {
	fake := setupTestService(t)

	out, err := execute(t, "analyze", "--source", "reddit", "--model", "m", "aapl")

	require.NoError(t, err)
	assert.Equal(t, "<answer>{}</answer>\n", out)
	require.Len(t, fake.requests, 1)
	assert.Equal(t, app.AnalyzeRequest{Ticker: "aapl", Source: "reddit", Model: "m"}, fake.requests[0])
}

func TestAnalyzeCmd_TemperatureOnlyWhenSet(t *testing.T) {
	fake := setupTestService(t)

	_, err := execute(t, "analyze", "-t", "0.9", "AAPL")

	require.NoError(t, err)
	require.NotNil(t, fake.requests[0].Temperature)
	assert.InDelta(t, 0.9, *fake.requests[0].Temperature, 1e-9)
}

func TestAnalyzeCmd_JSONOutput(t *testing.T) {
	setupTestService(t)

	out, err := execute(t, "analyze", "--json", "AAPL")

	require.NoError(t, err)
	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "AAPL", report.Ticker)
	assert.Equal(t, domain.SourcePlainArticle, report.Source)
}

func TestAnalyzeCmd_Notify(t *testing.T) {
	fake := setupTestService(t)

	_, err := execute(t, "analyze", "--notify", "AAPL")

	require.NoError(t, err)
	assert.Len(t, fake.published, 1)
}

func TestAnalyzeCmd_NotifyFailure(t *testing.T) {
	fake := setupTestService(t)
	fake.publishErr = domain.NewConfigurationError("telegram", "botToken")

	_, err := execute(t, "analyze", "--notify", "AAPL")

	assert.True(t, domain.IsConfigurationError(err))
}

func TestAnalyzeCmd_InvalidSource(t *testing.T) {
	fake := setupTestService(t)
	fake.analyzeErr = domain.ErrInvalidSource

	_, err := execute(t, "analyze", "--source", "twitter", "AAPL")

	assert.ErrorIs(t, err, domain.ErrInvalidSource)
}

func TestAnalyzeCmd_ServiceError(t *testing.T) {
	old := newService
	newService = func() (Service, error) { return nil, errors.New("openrouter: apiKey is not configured") }
	t.Cleanup(func() {
		newService = old
		resetFlags()
	})

	_, err := execute(t, "analyze", "AAPL")

	assert.ErrorContains(t, err, "apiKey")
}

func TestSourcesCmd(t *testing.T) {
	setupTestService(t)

	out, err := execute(t, "sources")

	require.NoError(t, err)
	assert.Contains(t, out, "yahoo")
	assert.Contains(t, out, "available")
	assert.Contains(t, out, "reddit")
	assert.Contains(t, out, "not configured")
}
