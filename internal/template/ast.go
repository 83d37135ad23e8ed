// Package template implements the closed substitution dialect documents
// are expanded from (spec.md §4.C4): scalar/attribute references, pipe
// filters, conditional blocks and list iteration, registered per named
// template at startup.
package template

// Node is one parsed element of a template body.
type Node interface {
	node()
}

// TextNode is literal output text copied through unchanged.
type TextNode struct {
	Text string
}

func (TextNode) node() {}

// ScalarRef is "{{name}}" — a bare context lookup.
type ScalarRef struct {
	Name string
}

func (ScalarRef) node() {}

// AttrRef is "{{project.name}}" — a dotted attribute path into a nested
// map or struct-shaped context value.
type AttrRef struct {
	Path []string
}

func (AttrRef) node() {}

// PipeExpr is a reference piped through one or more named filters, e.g.
// "{{amount|format_currency}}" or "{{pct|round(2)}}".
type PipeExpr struct {
	Source  Node
	Filters []Filter
}

func (PipeExpr) node() {}

// Filter is one named pipe stage with optional literal arguments.
type Filter struct {
	Name string
	Args []string
}

// IfNode is "{% if cond %}...{% else %}...{% endif %}". Else is nil when
// absent. Cond is evaluated for truthiness per eval.go's rules.
type IfNode struct {
	Cond Node
	Then []Node
	Else []Node
}

func (IfNode) node() {}

// ForNode is "{% for x in xs %}...{% endfor %}". Var is bound to each
// element of the evaluated Iterable in turn, alongside a "loop" context
// value exposing Index (1-based).
type ForNode struct {
	Var      string
	Iterable Node
	Body     []Node
}

func (ForNode) node() {}
