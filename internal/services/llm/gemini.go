package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel matches the model the hosted demo ran against.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements Client using the Google Gemini SDK with a response
// schema, so the model output is constrained to the Analysis shape.
type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiClient creates a Gemini-backed analysis client.
func NewGeminiClient(ctx context.Context, apiKey, model string, temperature float32) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SetTemperature(temperature)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = geminiAnalysisSchema()

	return &GeminiClient{
		client:    client,
		model:     m,
		modelName: model,
	}, nil
}

// Close closes the underlying API connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Analyze(ctx context.Context, review string) (*Analysis, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(review))
	if err != nil {
		return nil, classify(err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, &AnalysisError{Kind: KindMalformedResponse, Err: err}
	}
	return decode([]byte(text))
}

func geminiAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"key_themes": {
				Type:        genai.TypeArray,
				Description: descKeyThemes,
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"summary": {
				Type:        genai.TypeString,
				Description: descSummary,
			},
			"sentiment": {
				Type:        genai.TypeString,
				Format:      "enum",
				Description: descSentiment,
				Enum:        []string{SentimentPositive, SentimentNegative, SentimentNeutral},
			},
			"pros": {
				Type:        genai.TypeArray,
				Description: descPros,
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"cons": {
				Type:        genai.TypeArray,
				Description: descCons,
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		// pros and cons are optional in the schema, the way the demo declared
		// them; normalization fills them in when omitted.
		Required: []string{"key_themes", "summary", "sentiment"},
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty model response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("model response contains no text")
	}
	return sb.String(), nil
}
