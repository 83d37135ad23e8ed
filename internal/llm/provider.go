// Package llm implements the ordered model-fallback chain (spec.md
// §4.C7): a Provider abstraction over several wire protocols, an ordered
// list of model configs tried in turn with fixed per-config retries, and
// client memoisation by (provider, model).
package llm

import "context"

// Request is one completion request, provider-agnostic.
type Request struct {
	Prompt       string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

// Response is one completion, with whatever accounting the provider
// could observe.
type Response struct {
	Content    string
	LatencyMS  int64
	TokenCount int
}

// Provider is the interface every concrete wire protocol implements.
type Provider interface {
	Generate(ctx context.Context, req Request) (Response, error)
}
