package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

const systemPrompt = "You are a review analyst. Extract the requested fields " +
	"from the user's product or restaurant review and respond with a JSON " +
	"object matching the provided schema."

// OpenAIClient implements Client against OpenAI or any OpenAI-compatible
// endpoint, using strict JSON-schema structured output.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIClient creates an OpenAI-backed analysis client. A non-empty
// baseURL points it at a compatible alternative endpoint.
func NewOpenAIClient(apiKey, baseURL, model string, temperature float64) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}, nil
}

func (c *OpenAIClient) Analyze(ctx context.Context, review string) (*Analysis, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(review),
		},
		Temperature: openai.Float(c.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "review_analysis",
					Strict: openai.Bool(true),
					Schema: openaiAnalysisSchema(),
				},
			},
		},
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &AnalysisError{Kind: KindMalformedResponse, Err: fmt.Errorf("no choices in model response")}
	}
	return decode([]byte(resp.Choices[0].Message.Content))
}

// openaiAnalysisSchema returns the Analysis JSON schema. Strict mode requires
// every property listed in required and additionalProperties false.
func openaiAnalysisSchema() map[string]any {
	stringArray := func(desc string) map[string]any {
		return map[string]any{
			"type":        "array",
			"description": desc,
			"items":       map[string]any{"type": "string"},
		}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"key_themes": stringArray(descKeyThemes),
			"summary": map[string]any{
				"type":        "string",
				"description": descSummary,
			},
			"sentiment": map[string]any{
				"type":        "string",
				"description": descSentiment,
				"enum":        []string{SentimentPositive, SentimentNegative, SentimentNeutral},
			},
			"pros": stringArray(descPros),
			"cons": stringArray(descCons),
		},
		"required":             []string{"key_themes", "summary", "sentiment", "pros", "cons"},
		"additionalProperties": false,
	}
}
