package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiProvider speaks the Gemini API via the official genai SDK, ported
// from the teacher's GeminiProvider and retargeted to this package's
// Provider interface and temperature/max-token request shape instead of
// an options map.
type GeminiProvider struct {
	Model  string // e.g. "gemini-2.0-flash-exp"
	APIKey string
}

// NewGeminiProvider returns a Provider for the given Gemini model. APIKey
// falls back to the GEMINI_API_KEY environment variable when empty.
func NewGeminiProvider(model, apiKey string) *GeminiProvider {
	return &GeminiProvider{Model: model, APIKey: apiKey}
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (Response, error) {
	apiKey := p.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return Response{}, fmt.Errorf("GEMINI_API_KEY_MISSING: no API key configured")
	}

	model := p.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return Response{}, fmt.Errorf("GEMINI_CLIENT_ERROR: %w", err)
	}

	temperature := float32(req.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if strings.Contains(strings.ToLower(req.SystemPrompt), "json") || strings.Contains(strings.ToLower(req.Prompt), "json") {
		config.ResponseMIMEType = "application/json"
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}

	start := time.Now()
	result, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), config)
	if err != nil {
		return Response{}, fmt.Errorf("GEMINI_GENERATION_ERROR: %w", err)
	}
	latency := time.Since(start).Milliseconds()

	text := result.Text()
	if len(result.Candidates) > 0 {
		cand := result.Candidates[0]
		if cand.GroundingMetadata != nil && len(cand.GroundingMetadata.GroundingChunks) > 0 {
			var citations []string
			for _, chunk := range cand.GroundingMetadata.GroundingChunks {
				if chunk.Web != nil {
					citations = append(citations, fmt.Sprintf("[%s](%s)", chunk.Web.Title, chunk.Web.URI))
				}
			}
			if len(citations) > 0 {
				text = fmt.Sprintf("%s\n\n**Źródła:**\n%s", text, strings.Join(citations, "\n"))
			}
		}
	}

	tokenCount := 0
	if result.UsageMetadata != nil {
		tokenCount = int(result.UsageMetadata.TotalTokenCount)
	}

	return Response{Content: text, LatencyMS: latency, TokenCount: tokenCount}, nil
}
