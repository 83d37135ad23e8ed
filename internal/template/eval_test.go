package template

import "testing"

func TestRenderScalarAndAttrRef(t *testing.T) {
	nodes, err := Parse("Hello {{name}}, project {{project.name}}.")
	if err != nil {
		t.Fatal(err)
	}
	ctx := map[string]interface{}{
		"name":    "Jan",
		"project": map[string]interface{}{"name": "Rekomendacje"},
	}
	got := Render(nodes, ctx)
	want := "Hello Jan, project Rekomendacje."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderUndefinedIsEmptyByDefault(t *testing.T) {
	nodes, err := Parse("Value: {{missing}}.")
	if err != nil {
		t.Fatal(err)
	}
	got := Render(nodes, map[string]interface{}{})
	if got != "Value: ." {
		t.Errorf("got %q", got)
	}
}

func TestRenderStrictFailsOnUndefined(t *testing.T) {
	nodes, err := Parse("Value: {{missing}}.")
	if err != nil {
		t.Fatal(err)
	}
	_, err = RenderStrict(nodes, map[string]interface{}{})
	if err == nil {
		t.Fatal("expected error for undefined reference in strict mode")
	}
}

func TestRenderIfElse(t *testing.T) {
	nodes, err := Parse("{% if ok %}yes{% else %}no{% endif %}")
	if err != nil {
		t.Fatal(err)
	}
	if got := Render(nodes, map[string]interface{}{"ok": true}); got != "yes" {
		t.Errorf("got %q", got)
	}
	if got := Render(nodes, map[string]interface{}{"ok": false}); got != "no" {
		t.Errorf("got %q", got)
	}
}

func TestRenderForLoopIndex(t *testing.T) {
	nodes, err := Parse("{% for x in xs %}{{loop.index}}:{{x}} {% endfor %}")
	if err != nil {
		t.Fatal(err)
	}
	ctx := map[string]interface{}{"xs": []interface{}{"a", "b", "c"}}
	got := Render(nodes, ctx)
	want := "1:a 2:b 3:c "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderPipeFormatCurrency(t *testing.T) {
	nodes, err := Parse("Total: {{amount|format_currency}}")
	if err != nil {
		t.Fatal(err)
	}
	got := Render(nodes, map[string]interface{}{"amount": 1234.5})
	want := "Total: 1 234,50 zł"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderPipeRoundWithArg(t *testing.T) {
	nodes, err := Parse("{{v|round(2)}}")
	if err != nil {
		t.Fatal(err)
	}
	got := Render(nodes, map[string]interface{}{"v": 0.123456})
	if got != "0.12" {
		t.Errorf("got %q", got)
	}
}

func TestParseMissingEndifError(t *testing.T) {
	_, err := Parse("{% if ok %}yes")
	if err == nil {
		t.Fatal("expected parse error for unmatched if")
	}
}
