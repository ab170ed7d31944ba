package usecase

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"SentimentAgent/internal/domain"
)

// ErrMalformedAnswer is returned when a completion carries no usable <answer> payload.
var ErrMalformedAnswer = errors.New("malformed answer")

var answerExpr = regexp.MustCompile(`(?s)<answer>(.*?)</answer>`)

var answerKeys = []string{"summary", "overall_sentiment_score", "opinion_diversity_score"}

// ParseAnswer extracts the JSON object of the last <answer> tag in a completion.
func ParseAnswer(text string) (domain.Answer, error) {
	matches := answerExpr.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return domain.Answer{}, fmt.Errorf("%w: no <answer> tag", ErrMalformedAnswer)
	}

	payload := cleanJSON(matches[len(matches)-1][1])
	if !gjson.Valid(payload) {
		return domain.Answer{}, fmt.Errorf("%w: invalid json", ErrMalformedAnswer)
	}

	parsed := gjson.Parse(payload)
	if !parsed.IsObject() {
		return domain.Answer{}, fmt.Errorf("%w: answer is not an object", ErrMalformedAnswer)
	}

	values := gjson.GetMany(payload, answerKeys...)
	for i, v := range values {
		if !v.Exists() {
			return domain.Answer{}, fmt.Errorf("%w: missing %s", ErrMalformedAnswer, answerKeys[i])
		}
	}

	return domain.Answer{
		Summary:               values[0].String(),
		OverallSentimentScore: values[1].String(),
		OpinionDiversityScore: values[2].String(),
	}, nil
}

func cleanJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
