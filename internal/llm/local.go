package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type localGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
	Options struct {
		Temperature float64 `json:"temperature"`
	} `json:"options"`
}

type localGenerateChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// LocalProvider speaks a local streamed-generate endpoint in the style of
// Ollama's "/api/generate": the server emits one JSON object per line,
// each carrying a fragment of the response, terminated by a chunk with
// done=true. Recovered per SPEC_FULL.md §9's "local streamed generate
// endpoint" detail, which spec.md only names without showing the wire
// shape; expressed here with the same raw net/http + encoding/json idiom
// as this package's other providers.
type LocalProvider struct {
	BaseURL string // e.g. "http://localhost:11434/api/generate"
	Model   string
	Client  *http.Client
}

// NewLocalProvider returns a Provider for a local streamed-generate endpoint.
func NewLocalProvider(baseURL, model string) *LocalProvider {
	return &LocalProvider{BaseURL: baseURL, Model: model, Client: http.DefaultClient}
}

func (p *LocalProvider) Generate(ctx context.Context, req Request) (Response, error) {
	body := localGenerateRequest{
		Model:  p.Model,
		Prompt: req.Prompt,
		System: req.SystemPrompt,
		Stream: true,
	}
	body.Options.Temperature = req.Temperature

	raw, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("LOCAL_MARSHAL_ERROR: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return Response{}, fmt.Errorf("LOCAL_REQ_CREATE_ERROR: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	res, err := client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("LOCAL_API_CALL_ERROR: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("LOCAL_API_ERROR: status=%d", res.StatusCode)
	}

	var out strings.Builder
	scanner := bufio.NewScanner(res.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var chunk localGenerateChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return Response{}, fmt.Errorf("LOCAL_CHUNK_UNMARSHAL_ERROR: %w", err)
		}
		out.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return Response{}, fmt.Errorf("LOCAL_STREAM_READ_ERROR: %w", err)
	}

	return Response{
		Content:   out.String(),
		LatencyMS: time.Since(start).Milliseconds(),
	}, nil
}
