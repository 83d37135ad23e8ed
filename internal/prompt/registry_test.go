package prompt

import "testing"

func TestRegisterDefaultsRegistersThreeCategories(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	if r.Count() != 3 {
		t.Fatalf("got %d categories, want 3", r.Count())
	}
	for _, category := range []string{"generation", "refinement", "model_review"} {
		if _, err := r.GetCategory(category); err != nil {
			t.Errorf("missing category %q: %v", category, err)
		}
	}
}

func TestGetCategoryUnknownReturnsError(t *testing.T) {
	r := NewRegistry()
	if _, err := r.GetCategory("nonexistent"); err == nil {
		t.Fatal("expected error for unregistered category")
	}
}

func TestRenderUserPromptSubstitutesVars(t *testing.T) {
	tmpl := &Template{Category: "x", UserPromptTmpl: "Hello {{.Name}}"}
	out, err := RenderUserPrompt(tmpl, map[string]interface{}{"Name": "Jan"})
	if err != nil {
		t.Fatal(err)
	}
	if out != "Hello Jan" {
		t.Errorf("got %q", out)
	}
}

func TestRenderUserPromptEmptyTemplateReturnsEmpty(t *testing.T) {
	tmpl := &Template{Category: "x"}
	out, err := RenderUserPrompt(tmpl, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
