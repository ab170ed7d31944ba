package domain

// Answer is the structured payload a model returns inside its <answer> tag.
// Scores are kept as text because models emit both strings and numbers.
type Answer struct {
	Summary               string `json:"summary"`
	OverallSentimentScore string `json:"overall_sentiment_score"`
	OpinionDiversityScore string `json:"opinion_diversity_score"`
}

// Report pairs a completion with the request that produced it.
type Report struct {
	Ticker string          `json:"ticker"`
	Source SourceKind      `json:"source"`
	Model  string          `json:"model"`
	Raw    SentimentResult `json:"raw"`
	Answer *Answer         `json:"answer,omitempty"`
}
