package docgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/founder-pl/br-doc-generator/internal/datasource"
	"github.com/founder-pl/br-doc-generator/internal/generator"
	"github.com/founder-pl/br-doc-generator/internal/template"
)

func newTestRegistry(t *testing.T) *template.Registry {
	t.Helper()
	reg := template.NewRegistry()
	err := reg.Register(
		"project_card", "card",
		"# Karta {{project_name}}\n\nKoszt: {{total_gross}}.",
		[]template.DataRequirement{{Source: "project_info", Required: []string{"project_id"}}},
		"", "## Demo karty\n\nPrzykładowa treść.", false,
	)
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestListTemplatesReportsRequiredParams(t *testing.T) {
	resp := ListTemplates(newTestRegistry(t))
	if resp.Total != 1 {
		t.Fatalf("expected 1 template, got %d", resp.Total)
	}
	if resp.Templates[0].RequiredParams[0] != "project_id" {
		t.Errorf("expected required param project_id, got %v", resp.Templates[0].RequiredParams)
	}
}

func TestGetTemplateNotFound(t *testing.T) {
	_, err := GetTemplate(newTestRegistry(t), "does_not_exist")
	var notFound ErrTemplateNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestGetDemoReturnsDemoBody(t *testing.T) {
	demo, err := GetDemo(newTestRegistry(t), "project_card")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(demo, "Przykładowa treść") {
		t.Errorf("expected demo body, got %q", demo)
	}
}

func TestPreviewDataResolvesContextWithoutRendering(t *testing.T) {
	reg := newTestRegistry(t)
	sources := datasource.NewRegistry()
	gen := generator.New(reg, sources, nil)

	resp, err := PreviewData(context.Background(), gen, PreviewDataRequest{
		TemplateID: "project_card",
		Params:     map[string]interface{}{"project_id": "p1", "project_name": "System X"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Context["project_name"] != "System X" {
		t.Errorf("expected resolved param in context, got %v", resp.Context)
	}
}

func TestGenerateProducesDeterministicFallback(t *testing.T) {
	reg := newTestRegistry(t)
	sources := datasource.NewRegistry()
	gen := generator.New(reg, sources, nil)

	resp, err := Generate(context.Background(), gen, GenerateRequest{
		TemplateID: "project_card",
		Params:     map[string]interface{}{"project_id": "p1", "project_name": "System X"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Content, "System X") {
		t.Errorf("expected generated content, got %q", resp.Content)
	}
	if len(resp.Errors) != 0 {
		t.Errorf("expected no errors, got %v", resp.Errors)
	}
}

func TestRenderHTMLConvertsHeading(t *testing.T) {
	resp, err := RenderHTML(RenderHTMLRequest{Markdown: "# Tytuł"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.HTML, "<h1") {
		t.Errorf("expected an <h1>, got %q", resp.HTML)
	}
}
