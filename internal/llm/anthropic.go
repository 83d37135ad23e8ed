package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// AnthropicProvider speaks Anthropic's /v1/messages wire protocol, built
// against the same "build struct, marshal, POST, decode" idiom as this
// package's OpenAI-compatible provider.
type AnthropicProvider struct {
	BaseURL string // defaults to "https://api.anthropic.com/v1/messages"
	Model   string
	APIKey  string
	Client  *http.Client
}

// NewAnthropicProvider returns a Provider for the Anthropic messages API.
func NewAnthropicProvider(model, apiKey string) *AnthropicProvider {
	return &AnthropicProvider{
		BaseURL: "https://api.anthropic.com/v1/messages",
		Model:   model,
		APIKey:  apiKey,
		Client:  http.DefaultClient,
	}
}

func (p *AnthropicProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if p.APIKey == "" {
		return Response{}, fmt.Errorf("ANTHROPIC_API_KEY_MISSING: no API key configured")
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	body := anthropicRequest{
		Model:       p.Model,
		System:      req.SystemPrompt,
		Messages:    []anthropicMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("ANTHROPIC_MARSHAL_ERROR: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return Response{}, fmt.Errorf("ANTHROPIC_REQ_CREATE_ERROR: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	res, err := client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("ANTHROPIC_API_CALL_ERROR: %w", err)
	}
	defer res.Body.Close()
	latency := time.Since(start).Milliseconds()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, fmt.Errorf("ANTHROPIC_READ_BODY_ERROR: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("ANTHROPIC_API_ERROR: status=%d body=%s", res.StatusCode, respBody)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Response{}, fmt.Errorf("ANTHROPIC_UNMARSHAL_ERROR: %w", err)
	}
	if len(parsed.Content) == 0 {
		return Response{}, fmt.Errorf("ANTHROPIC_NO_CONTENT: body=%s", respBody)
	}

	return Response{
		Content:    parsed.Content[0].Text,
		LatencyMS:  latency,
		TokenCount: parsed.Usage.InputTokens + parsed.Usage.OutputTokens,
	}, nil
}
