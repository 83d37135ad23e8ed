// Package generator implements the document-generation algorithm
// (spec.md §4.C5): resolve a template's data sources, assemble a
// substitution context, optionally invoke the LLM fallback chain, and
// guarantee a deterministic fallback when no model is available or
// willing to cooperate.
package generator

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/founder-pl/br-doc-generator/internal/datasource"
	"github.com/founder-pl/br-doc-generator/internal/domain"
	"github.com/founder-pl/br-doc-generator/internal/llm"
	"github.com/founder-pl/br-doc-generator/internal/prompt"
	"github.com/founder-pl/br-doc-generator/internal/template"
	"github.com/founder-pl/br-doc-generator/internal/variable"
)

// tokenBudget returns the rough max-tokens budget per spec.md §4.C5:
// single-expense documents are short, everything else may run long.
func tokenBudget(category string) int {
	if category == "single_expense" {
		return 2000
	}
	return 8000
}

var headingRE = regexp.MustCompile(`(?m)^#`)

func acceptableModelOutput(content string) bool {
	if !headingRE.MatchString(content) {
		return false
	}
	return len(strings.TrimSpace(content)) >= 100
}

// Generator ties the data-source registry, template registry and LLM
// chain together behind the single entry point Generate.
type Generator struct {
	Templates   *template.Registry
	DataSources *datasource.Registry
	Chain       *llm.Chain // nil disables model generation entirely
}

// New returns a Generator over the given registries. chain may be nil.
func New(templates *template.Registry, sources *datasource.Registry, chain *llm.Chain) *Generator {
	return &Generator{Templates: templates, DataSources: sources, Chain: chain}
}

// Result is the outcome of one Generate call.
type Result struct {
	Markdown      string
	RefinementLog []RefinementEntry
}

// Generate runs the full seven-step algorithm for templateID against
// params, returning the finished Markdown with its trailing footnotes
// section. useModel additionally requires g.Chain != nil to take effect.
func (g *Generator) Generate(ctx context.Context, templateID string, projectID string, params map[string]interface{}, aggregates map[string]interface{}, useModel bool) (Result, error) {
	tpl, ok := g.Templates.Get(templateID)
	if !ok {
		return Result{}, fmt.Errorf("unknown template %q", templateID)
	}

	// 1. Resolve data sources, fetch concurrently.
	fetched := g.fetchRequirements(ctx, tpl, params)

	// 2. Build the substitution context.
	tracker := variable.New(projectID)
	ctxMap := buildContext(fetched, aggregates, params)
	if tpl.Category == "single_expense" {
		if expense, ok := params["expense"].(domain.ExpenseRecord); ok {
			for k, v := range PrefillSingleExpense(expense) {
				ctxMap[k] = v
			}
		}
	}

	var markdown string
	modelAccepted := false

	// 4. Optional model generation.
	if useModel && g.Chain != nil {
		if content, err := g.generateViaModel(ctx, tpl, ctxMap); err == nil && acceptableModelOutput(content) {
			markdown = content
			modelAccepted = true
		}
	}

	// 5. Deterministic fallback — guaranteed to produce output.
	if !modelAccepted {
		rendered, err := tpl.Render(ctxMap)
		if err != nil {
			return Result{}, fmt.Errorf("rendering template %q: %w", templateID, err)
		}
		markdown = rendered
	}

	// 3. Pre-tracking pass over the finished body.
	markdown = applyPreTracking(markdown, fetched, tracker)

	// 6. Append footnotes.
	markdown += "\n" + tracker.FootnotesSection()

	// 7. Return.
	return Result{Markdown: markdown}, nil
}

// PreviewContext resolves templateID's data sources and returns the
// substitution context Generate would build, without invoking the model
// or rendering a document (spec.md §6 POST /doc-generator/preview-data).
func (g *Generator) PreviewContext(ctx context.Context, templateID string, params, aggregates map[string]interface{}) (map[string]interface{}, error) {
	tpl, ok := g.Templates.Get(templateID)
	if !ok {
		return nil, fmt.Errorf("unknown template %q", templateID)
	}
	fetched := g.fetchRequirements(ctx, tpl, params)
	return buildContext(fetched, aggregates, params), nil
}

// fetchRequirements binds tpl.Requires against params and runs them
// concurrently through the data-source registry.
func (g *Generator) fetchRequirements(ctx context.Context, tpl *template.Template, params map[string]interface{}) *datasource.OrderedResults {
	reqs := make([]datasource.Request, 0, len(tpl.Requires))
	for _, req := range tpl.Requires {
		bound := make(map[string]interface{})
		for _, name := range req.Required {
			if v, ok := params[name]; ok {
				bound[name] = v
			}
		}
		for _, name := range req.Optional {
			if v, ok := params[name]; ok {
				bound[name] = v
			}
		}
		reqs = append(reqs, datasource.Request{Name: req.Source, Params: bound})
	}
	return g.DataSources.FetchMultiple(ctx, reqs)
}

// buildContext merges fetched payloads and their derived scalar
// variables, then computed aggregates, then literal parameters —
// parameters win on key collision since they are the caller's most
// specific intent.
func buildContext(fetched *datasource.OrderedResults, aggregates, params map[string]interface{}) map[string]interface{} {
	ctxMap := make(map[string]interface{})
	for _, r := range fetched.Slice() {
		if !r.OK() {
			continue
		}
		ctxMap[r.Source] = r.Payload
		for k, v := range r.Variables {
			ctxMap[k] = v
		}
	}
	for k, v := range aggregates {
		ctxMap[k] = v
	}
	for k, v := range params {
		ctxMap[k] = v
	}
	return ctxMap
}

// generateViaModel builds the "generation" prompt via the prompt
// registry and asks the LLM chain for a completion at temperature 0.3.
func (g *Generator) generateViaModel(ctx context.Context, tpl *template.Template, ctxMap map[string]interface{}) (string, error) {
	pt, err := prompt.Get().GetCategory("generation")
	if err != nil {
		return "", err
	}
	userPrompt, err := prompt.RenderUserPrompt(pt, map[string]interface{}{
		"TemplateID":  tpl.ID,
		"Context":     formatContext(ctxMap),
		"ModelPrompt": tpl.ModelPrompt,
	})
	if err != nil {
		return "", err
	}

	resp, err := g.Chain.Generate(ctx, llm.Request{
		Prompt:       userPrompt,
		SystemPrompt: pt.SystemPrompt,
		Temperature:  0.3,
		MaxTokens:    tokenBudget(tpl.Category),
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// formatContext renders ctxMap as a stable, human-readable block for
// inclusion in a model prompt.
func formatContext(ctxMap map[string]interface{}) string {
	keys := make([]string, 0, len(ctxMap))
	for k := range ctxMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, ctxMap[k])
	}
	return b.String()
}

// applyPreTracking scans the rendered body for the first plain-text
// occurrence of every well-known traceable scalar's formatted value and
// replaces it with its footnote-annotated form, registering the
// variable with the tracker as it goes (spec.md §4.C5 step 3).
func applyPreTracking(body string, fetched *datasource.OrderedResults, tracker *variable.Tracker) string {
	for _, r := range fetched.Slice() {
		if !r.OK() || len(r.Variables) == 0 {
			continue
		}
		keys := make([]string, 0, len(r.Variables))
		for k := range r.Variables {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value := r.Variables[key]
			formatted := formatValue(value)
			if formatted == "" {
				continue
			}
			idx := strings.Index(body, formatted)
			if idx < 0 {
				continue
			}
			footnote := tracker.Track(key, value, r.Source, key, "")
			annotated := "**" + formatted + "**" + footnote
			body = body[:idx] + annotated + body[idx+len(formatted):]
		}
	}
	return body
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case domain.Money:
		return t.String()
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}
