package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Sentiment values an Analysis may carry after normalization.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// DefaultSummary is substituted when the model omits a summary.
const DefaultSummary = "No summary available"

// Per-field hints sent to the model alongside the response schema.
const (
	descKeyThemes = "A few key themes discussed in the review, in a list"
	descSummary   = "A brief summary of the review"
	descSentiment = "Return 'positive', 'negative', or 'neutral' based on the overall sentiment of the review."
	descPros      = "A list of pros mentioned in the review"
	descCons      = "A list of cons mentioned in the review"
)

// Analysis is the structured extraction of a single review. Every field is
// populated: normalization defaults whatever the provider left out.
type Analysis struct {
	KeyThemes []string `json:"key_themes"`
	Summary   string   `json:"summary"`
	Sentiment string   `json:"sentiment"`
	Pros      []string `json:"pros"`
	Cons      []string `json:"cons"`
}

// Client analyzes free-text reviews against the Analysis schema.
type Client interface {
	Analyze(ctx context.Context, review string) (*Analysis, error)
}

// decode parses a provider's raw JSON output and normalizes it. Undecodable
// output is a malformed-response failure; partial output is not.
func decode(data []byte) (*Analysis, error) {
	var raw Analysis
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &AnalysisError{Kind: KindMalformedResponse, Err: err}
	}
	return Normalize(raw), nil
}

// Normalize defaults each field independently so callers never see a nil
// slice, an empty summary, or a sentiment outside the three-value enum.
func Normalize(raw Analysis) *Analysis {
	out := &Analysis{
		KeyThemes: raw.KeyThemes,
		Summary:   raw.Summary,
		Sentiment: strings.ToLower(strings.TrimSpace(raw.Sentiment)),
		Pros:      raw.Pros,
		Cons:      raw.Cons,
	}

	switch out.Sentiment {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		out.Sentiment = SentimentNeutral
	}
	if out.Summary == "" {
		out.Summary = DefaultSummary
	}
	if out.KeyThemes == nil {
		out.KeyThemes = []string{}
	}
	if out.Pros == nil {
		out.Pros = []string{}
	}
	if out.Cons == nil {
		out.Cons = []string{}
	}
	return out
}
