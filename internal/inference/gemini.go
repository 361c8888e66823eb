package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is the Gemini model used for grammar correction when
// none is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

const correctionPrompt = "Correct the grammar, spelling, and punctuation of the following text. " +
	"Respond with only the corrected text, nothing else.\n\n"

// GeminiCorrector produces corrected text with a Google Gemini model. It
// is an alternative secondary provider to the HuggingFace correction
// model.
type GeminiCorrector struct {
	client *genai.Client
	model  string
}

// NewGeminiCorrector creates a Gemini-backed corrector.
func NewGeminiCorrector(ctx context.Context, apiKey, model string) (*GeminiCorrector, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCorrector{client: client, model: model}, nil
}

// Correct generates a corrected version of text.
func (g *GeminiCorrector) Correct(ctx context.Context, text string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1) // Low temperature for consistent output

	resp, err := model.GenerateContent(ctx, genai.Text(correctionPrompt+text))
	if err != nil {
		return "", fmt.Errorf("failed to generate corrected text: %w", err)
	}

	corrected, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(corrected), nil
}

// Close releases resources held by the corrector.
func (g *GeminiCorrector) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
