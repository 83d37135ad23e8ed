package llm

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Chain tries an ordered list of model configs, retrying each up to its
// MaxRetries before falling through to the next. Clients are memoised by
// "provider/model" so repeated calls against the same config reuse one
// Provider instance, mirroring the teacher's provider-map-keyed-by-name
// pattern in pkg/core/agent/manager.go, generalized from "one active
// provider with override" to "ordered chain with fallthrough".
type Chain struct {
	mu      sync.Mutex
	configs []ModelConfig
	clients map[string]Provider
}

// NewChain returns a Chain over configs, tried lowest-Priority-first.
func NewChain(configs []ModelConfig) *Chain {
	sorted := make([]ModelConfig, len(configs))
	copy(sorted, configs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })
	return &Chain{configs: sorted, clients: make(map[string]Provider)}
}

func (c *Chain) clientFor(cfg ModelConfig) Provider {
	key := cfg.Provider + "/" + cfg.Model
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.clients[key]; ok {
		return p
	}
	p := buildProvider(cfg)
	c.clients[key] = p
	return p
}

// Generate attempts each configured model in order, retrying transport
// failures up to MaxRetries times per config, and returns the first
// response with non-empty content and no error. If every config is
// exhausted, it returns an error carrying the last observed failure —
// it never panics.
func (c *Chain) Generate(ctx context.Context, req Request) (Response, error) {
	var lastErr error
	for _, cfg := range c.configs {
		provider := c.clientFor(cfg)
		retries := cfg.MaxRetries
		if retries < 1 {
			retries = 1
		}
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeoutFor(cfg.Provider)
		}
		for attempt := 0; attempt < retries; attempt++ {
			callCtx, cancel := context.WithTimeout(ctx, timeout)
			resp, err := provider.Generate(callCtx, req)
			cancel()
			if err == nil && resp.Content != "" {
				return resp, nil
			}
			if err != nil {
				lastErr = fmt.Errorf("%s/%s: %w", cfg.Provider, cfg.Model, err)
			} else {
				lastErr = fmt.Errorf("%s/%s: empty response content", cfg.Provider, cfg.Model)
			}
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no model configs provided")
	}
	return Response{}, fmt.Errorf("LLM_CHAIN_EXHAUSTED: %w", lastErr)
}
