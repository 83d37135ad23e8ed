package prompt

// RegisterDefaults registers the three prompt categories the generator
// and refinement loop use (spec.md §4.C5): document generation from a
// template's substitution context, issue-driven refinement, and the
// optional model-review validation stage.
func RegisterDefaults(r *Registry) {
	r.Register(&Template{
		Category:     "generation",
		SystemPrompt: "Jesteś asystentem prawnym wyspecjalizowanym w dokumentacji ulgi B+R i IP Box w polskim prawie podatkowym. Twoje odpowiedzi muszą być sformatowane jako Markdown z co najmniej jednym nagłówkiem.",
		UserPromptTmpl: `Na podstawie poniższego kontekstu sporządź dokument zgodny z szablonem "{{.TemplateID}}".

Kontekst:
{{.Context}}

Wymagania modelowe:
{{.ModelPrompt}}`,
	})

	r.Register(&Template{
		Category:     "refinement",
		SystemPrompt: "Jesteś redaktorem dokumentacji podatkowej. Popraw wskazany dokument zgodnie z listą zastrzeżeń, zachowując wszystkie istniejące wartości liczbowe bez zmian.",
		UserPromptTmpl: `Zastrzeżenia do poprawy:
{{range .Issues}}[{{.Severity}}] {{.Message}} / Lokalizacja: {{.Location}} / Sugestia: {{.Suggestion}}
{{end}}

Bieżąca treść dokumentu:
{{.Content}}`,
	})

	r.Register(&Template{
		Category:     "model_review",
		SystemPrompt: "Jesteś recenzentem dokumentacji B+R/IP Box. Zwróć wyłącznie obiekt JSON {\"score\": <0..1>, \"issues\": [...]}, bez żadnego innego tekstu.",
		UserPromptTmpl: `Oceń poniższy dokument pod kątem zgodności z wymogami ulgi B+R/IP Box i zwróć ocenę oraz listę problemów w formacie JSON:

{{.Content}}`,
	})
}
