package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// chatMessage is the OpenAI-compatible chat message shape, shared by
// every vendor that speaks this wire protocol (DeepSeek, Qwen/DashScope,
// and most self-hosted OpenAI-compatible gateways).
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// OpenAICompatProvider speaks the OpenAI chat-completions wire protocol
// against BaseURL, the idiom DeepSeek's and Qwen's direct integrations in
// the teacher repo each re-implement per vendor — generalized here to one
// implementation parameterised by base URL, model and API key.
type OpenAICompatProvider struct {
	BaseURL string
	Model   string
	APIKey  string
	Client  *http.Client
}

// NewOpenAICompatProvider returns a Provider for any OpenAI-compatible
// chat-completions endpoint (baseURL must include the full path, e.g.
// "https://api.deepseek.com/chat/completions").
func NewOpenAICompatProvider(baseURL, model, apiKey string) *OpenAICompatProvider {
	return &OpenAICompatProvider{BaseURL: baseURL, Model: model, APIKey: apiKey, Client: http.DefaultClient}
}

func (p *OpenAICompatProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if p.APIKey == "" {
		return Response{}, fmt.Errorf("OPENAI_COMPAT_API_KEY_MISSING: no API key configured for %s", p.BaseURL)
	}

	body := chatRequest{
		Model: p.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("OPENAI_COMPAT_MARSHAL_ERROR: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return Response{}, fmt.Errorf("OPENAI_COMPAT_REQ_CREATE_ERROR: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	res, err := client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("OPENAI_COMPAT_API_CALL_ERROR: %w", err)
	}
	defer res.Body.Close()
	latency := time.Since(start).Milliseconds()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, fmt.Errorf("OPENAI_COMPAT_READ_BODY_ERROR: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("OPENAI_COMPAT_API_ERROR: status=%d body=%s", res.StatusCode, respBody)
	}

	repaired, err := jsonrepair.RepairJSON(string(respBody))
	if err != nil {
		repaired = string(respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal([]byte(repaired), &parsed); err != nil {
		return Response{}, fmt.Errorf("OPENAI_COMPAT_UNMARSHAL_ERROR: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Response{}, fmt.Errorf("OPENAI_COMPAT_NO_CHOICES: body=%s", respBody)
	}

	return Response{
		Content:    parsed.Choices[0].Message.Content,
		LatencyMS:  latency,
		TokenCount: parsed.Usage.TotalTokens,
	}, nil
}
