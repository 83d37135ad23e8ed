package template

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// UndefinedError is returned by RenderStrict when a reference cannot be
// resolved against the context.
type UndefinedError struct {
	Ref string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("undefined reference %q", e.Ref)
}

// Render expands nodes against ctx, evaluating undefined references to
// the empty string (spec.md §4.C4's deliberate permissiveness — the
// validator, not the expander, surfaces missing content).
func Render(nodes []Node, ctx map[string]interface{}) string {
	out, _ := render(nodes, ctx, false)
	return out
}

// RenderStrict expands nodes against ctx, returning an *UndefinedError on
// the first unresolved reference instead of emitting "".
func RenderStrict(nodes []Node, ctx map[string]interface{}) (string, error) {
	return render(nodes, ctx, true)
}

func render(nodes []Node, ctx map[string]interface{}, strict bool) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		switch v := n.(type) {
		case TextNode:
			b.WriteString(v.Text)
		case ScalarRef, AttrRef, PipeExpr:
			val, ok := evalExpr(v, ctx)
			if !ok {
				if strict {
					return "", &UndefinedError{Ref: refString(v)}
				}
				continue
			}
			b.WriteString(toDisplayString(val))
		case IfNode:
			cond, ok := evalExpr(v.Cond, ctx)
			branch := v.Else
			if ok && truthy(cond) {
				branch = v.Then
			}
			sub, err := render(branch, ctx, strict)
			if err != nil {
				return "", err
			}
			b.WriteString(sub)
		case ForNode:
			iter, ok := evalExpr(v.Iterable, ctx)
			if !ok {
				if strict {
					return "", &UndefinedError{Ref: refString(v.Iterable)}
				}
				continue
			}
			items := toSlice(iter)
			for i, item := range items {
				loopCtx := make(map[string]interface{}, len(ctx)+2)
				for k, val := range ctx {
					loopCtx[k] = val
				}
				loopCtx[v.Var] = item
				loopCtx["loop"] = map[string]interface{}{"index": i + 1}
				sub, err := render(v.Body, loopCtx, strict)
				if err != nil {
					return "", err
				}
				b.WriteString(sub)
			}
		}
	}
	return b.String(), nil
}

func refString(n Node) string {
	switch v := n.(type) {
	case ScalarRef:
		return v.Name
	case AttrRef:
		return strings.Join(v.Path, ".")
	case PipeExpr:
		return refString(v.Source)
	default:
		return "?"
	}
}

// evalExpr resolves a reference/pipe node against ctx. ok is false when
// any step of the lookup chain is undefined.
func evalExpr(n Node, ctx map[string]interface{}) (interface{}, bool) {
	switch v := n.(type) {
	case ScalarRef:
		val, ok := ctx[v.Name]
		return val, ok
	case AttrRef:
		var cur interface{} = ctx
		for _, key := range v.Path {
			m, ok := asMap(cur)
			if !ok {
				return nil, false
			}
			cur, ok = m[key]
			if !ok {
				return nil, false
			}
		}
		return cur, true
	case PipeExpr:
		val, ok := evalExpr(v.Source, ctx)
		if !ok {
			return nil, false
		}
		for _, f := range v.Filters {
			var err error
			val, err = applyFilter(f, val)
			if err != nil {
				return nil, false
			}
		}
		return val, true
	default:
		return nil, false
	}
}

// asMap coerces interface{} holding a map[string]interface{} (the only
// shape nested context values take in this dialect).
func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case float64:
		return t != 0
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map {
			return rv.Len() > 0
		}
		return true
	}
}

func toSlice(v interface{}) []interface{} {
	if items, ok := v.([]interface{}); ok {
		return items
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func toDisplayString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}
