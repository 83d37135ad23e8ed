// Package prompt is a small registry of model-prompt templates keyed by
// category, so that adding a new prompt category does not require
// touching generator code (SPEC_FULL.md §7, supplementing a feature
// present in the original implementation's prompts module that spec.md's
// distillation compresses into an inline detail).
package prompt

// Template is one category's system/user prompt pair. UserPromptTmpl is
// a text/template body executed against the generator's substitution
// context.
type Template struct {
	Category       string
	SystemPrompt   string
	UserPromptTmpl string
}
