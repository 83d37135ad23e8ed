// Package docgen defines the request/response contract for the
// documentation-generation API (spec.md §6): listing/inspecting
// templates, previewing substitution data, generating a document and
// rendering Markdown to HTML. Handlers are pure functions over the
// template registry and internal/generator; wiring them to net/http
// routes is out of scope.
package docgen

import (
	"context"
	"fmt"

	"github.com/founder-pl/br-doc-generator/internal/generator"
	"github.com/founder-pl/br-doc-generator/internal/render"
	"github.com/founder-pl/br-doc-generator/internal/template"
)

// ErrTemplateNotFound is returned when a requested template id isn't
// registered.
type ErrTemplateNotFound struct {
	ID string
}

func (e ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("nie znaleziono szablonu o identyfikatorze %q", e.ID)
}

// TemplateSummary is one entry of ListTemplatesResponse.
type TemplateSummary struct {
	ID             string   `json:"id"`
	Category       string   `json:"category"`
	RequiredParams []string `json:"required_params"`
}

// ListTemplatesResponse answers GET /doc-generator/templates.
type ListTemplatesResponse struct {
	Templates []TemplateSummary `json:"templates"`
	Total     int               `json:"total"`
}

// ListTemplates enumerates every registered template.
func ListTemplates(reg *template.Registry) ListTemplatesResponse {
	ids := reg.List()
	out := make([]TemplateSummary, 0, len(ids))
	for _, id := range ids {
		tpl, ok := reg.Get(id)
		if !ok {
			continue
		}
		out = append(out, TemplateSummary{ID: tpl.ID, Category: tpl.Category, RequiredParams: requiredParamNames(tpl)})
	}
	return ListTemplatesResponse{Templates: out, Total: len(out)}
}

func requiredParamNames(tpl *template.Template) []string {
	var names []string
	for _, req := range tpl.Requires {
		names = append(names, req.Required...)
	}
	return names
}

// TemplateDescriptor answers GET /doc-generator/templates/{id}: the full
// descriptor including the raw template body.
type TemplateDescriptor struct {
	ID          string                     `json:"id"`
	Category    string                     `json:"category"`
	Body        string                     `json:"body"`
	Requires    []template.DataRequirement `json:"requires"`
	ModelPrompt string                     `json:"model_prompt,omitempty"`
	Strict      bool                       `json:"strict"`
}

// GetTemplate resolves a template's full descriptor.
func GetTemplate(reg *template.Registry, id string) (TemplateDescriptor, error) {
	tpl, ok := reg.Get(id)
	if !ok {
		return TemplateDescriptor{}, ErrTemplateNotFound{ID: id}
	}
	return TemplateDescriptor{
		ID:          tpl.ID,
		Category:    tpl.Category,
		Body:        tpl.Body,
		Requires:    tpl.Requires,
		ModelPrompt: tpl.ModelPrompt,
		Strict:      tpl.Strict,
	}, nil
}

// GetDemo answers GET /doc-generator/demo/{id}.
func GetDemo(reg *template.Registry, id string) (string, error) {
	tpl, ok := reg.Get(id)
	if !ok {
		return "", ErrTemplateNotFound{ID: id}
	}
	return tpl.Demo(), nil
}

// PreviewDataRequest answers POST /doc-generator/preview-data.
type PreviewDataRequest struct {
	TemplateID string
	Params     map[string]interface{}
	Aggregates map[string]interface{}
}

// PreviewDataResponse carries the resolved substitution context a
// generation call against the same template and params would use.
type PreviewDataResponse struct {
	Context map[string]interface{} `json:"context"`
}

// PreviewData resolves req's data sources without generating or
// rendering anything.
func PreviewData(ctx context.Context, gen *generator.Generator, req PreviewDataRequest) (PreviewDataResponse, error) {
	resolved, err := gen.PreviewContext(ctx, req.TemplateID, req.Params, req.Aggregates)
	if err != nil {
		return PreviewDataResponse{}, err
	}
	return PreviewDataResponse{Context: resolved}, nil
}

// GenerateRequest answers POST /doc-generator/generate.
type GenerateRequest struct {
	TemplateID string
	Params     map[string]interface{}
	Aggregates map[string]interface{}
	UseLLM     bool
}

// GenerateResponse answers POST /doc-generator/generate. Errors is
// populated instead of returning a Go error so a partially-generated
// document (the guaranteed deterministic fallback) can still be
// returned to the caller alongside whatever went wrong.
type GenerateResponse struct {
	TemplateID string   `json:"template_id"`
	Content    string   `json:"content"`
	Errors     []string `json:"errors,omitempty"`
}

// Generate runs the generator's full algorithm for req.
func Generate(ctx context.Context, gen *generator.Generator, req GenerateRequest) (GenerateResponse, error) {
	result, err := gen.Generate(ctx, req.TemplateID, "", req.Params, req.Aggregates, req.UseLLM)
	if err != nil {
		return GenerateResponse{TemplateID: req.TemplateID, Errors: []string{err.Error()}}, err
	}
	return GenerateResponse{TemplateID: req.TemplateID, Content: result.Markdown}, nil
}

// RenderHTMLRequest answers POST /doc-generator/render-html.
type RenderHTMLRequest struct {
	Markdown   string
	TemplateID string // informational only; rendering never depends on it
}

// RenderHTMLResponse carries the rendered HTML fragment.
type RenderHTMLResponse struct {
	HTML string `json:"html"`
}

// RenderHTML converts req.Markdown to HTML via internal/render.
func RenderHTML(req RenderHTMLRequest) (RenderHTMLResponse, error) {
	htmlContent, _, err := render.ToHTML(req.Markdown)
	if err != nil {
		return RenderHTMLResponse{}, err
	}
	return RenderHTMLResponse{HTML: htmlContent}, nil
}
