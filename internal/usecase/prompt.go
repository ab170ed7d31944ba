package usecase

import (
	"fmt"
	"math"
	"strings"

	"SentimentAgent/internal/domain"
)

const instructions = `First analyze the sentiment of each item. Give a score between 0 and 10 for the sentiment of the item. Do this in <sentiment_score> tags, one per item, referring to the item by its POST number.

Next, analyze the importance of each item. Give a score between 0 and 10 for the importance of the item. Do this in <importance_score> tags, one per item, referring to the item by its POST number.

Then, give a score between 0 and 10 for the overall sentiment of the items considering the sentiment and the importance of each item.

Then, give a score between 0 and 10 for the diversity of opinions across the items, where 0 means every item agrees and 10 means opinions are strongly divided.

Afterwards, summarise your findings ensuring to include all relevant and important information.

Return the overall sentiment score, the opinion diversity score and the summary between <answer> tags in the following JSON format. Do not repeat the per-item scores inside the answer:

<answer>
{
    "summary": "summary of the items",
    "overall_sentiment_score": "score between 0 and 10",
    "opinion_diversity_score": "score between 0 and 10"
}
</answer>`

// BuildPrompt composes the completion request for a set of rendered blocks.
// Temperature is clamped into [0,1].
func BuildPrompt(blocks []domain.RenderedBlock, ticker string, kind domain.SourceKind, model string, temperature float64) domain.PromptSpec {
	policy, ok := PolicyFor(kind)
	intro := policy.Intro
	if !ok {
		intro = fmt.Sprintf("items about %s from %s", ticker, kind)
	}
	role := roleInstruction(intro, kind)

	var b strings.Builder
	b.WriteString(role)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "The ticker being analyzed is %s.\n\n", ticker)

	if policy.Legend != "" {
		fmt.Fprintf(&b, "Each item carries a %s sentiment score. Scores map to labels as follows:\n", policy.ProviderName)
		b.WriteString(policy.Legend)
		b.WriteString("\n\n")
	}

	b.WriteString("Here is the news:\n")
	b.WriteString(newsBlock(blocks))
	b.WriteString("\n\n")
	b.WriteString(instructions)
	b.WriteString("\n")

	return domain.PromptSpec{
		SystemPrompt: role,
		UserPrompt:   b.String(),
		Model:        model,
		Temperature:  clampTemperature(temperature),
	}
}

func roleInstruction(intro string, kind domain.SourceKind) string {
	return fmt.Sprintf("You are a financial sentiment analyst. You will be given a list of %s. Your aim is to analyze the sentiment of the %s data.", intro, kind)
}

func newsBlock(blocks []domain.RenderedBlock) string {
	texts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		texts = append(texts, block.Text)
	}
	return strings.Join(texts, "\n\n")
}

func clampTemperature(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
