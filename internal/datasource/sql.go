package datasource

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// scalarKeys are copied verbatim from a single-row SQL result into
// DataSourceResult.Variables (spec.md §4.C2).
var scalarKeys = map[string]bool{
	"total_gross": true,
	"total_net":   true,
	"nexus":       true,
	"total_hours": true,
}

// numericAggregateFields get sum_<field>/count_<field> aggregates when a
// SQL source returns more than one row.
var numericAggregateFields = []string{"gross_amount", "net_amount", "hours", "total_hours"}

var namedParamRE = regexp.MustCompile(`:([a-zA-Z_][a-zA-Z0-9_]*)`)

// SQLSource builds a Fetcher backed by a pgx pool. query uses named
// placeholders (":project_id") the way the source descriptors are
// authored; they are translated to pgx's positional "$1" binds at fetch
// time, recovering the translation done against a different SQL driver
// in the source this registry was distilled from.
func SQLSource(pool *pgxpool.Pool, name string, query string) Fetcher {
	return func(ctx context.Context, params map[string]interface{}) Result {
		positional, order := toPositional(query)
		args := make([]interface{}, len(order))
		for i, p := range order {
			v, ok := params[p]
			if !ok {
				return ErrResult(name, KindSQL, query, fmt.Errorf("missing parameter %q", p))
			}
			args[i] = v
		}

		rows, err := pool.Query(ctx, positional, args...)
		if err != nil {
			return ErrResult(name, KindSQL, query, err)
		}
		defer rows.Close()

		records, err := pgx.CollectRows(rows, pgx.RowToMap)
		if err != nil {
			return ErrResult(name, KindSQL, query, err)
		}

		return Result{
			Payload:   records,
			Source:    name,
			Kind:      KindSQL,
			Query:     query,
			Variables: deriveVariables(records),
		}
	}
}

// toPositional rewrites ":name" placeholders into pgx's "$1", "$2", ...
// form, returning the rewritten query and the parameter names in bind
// order (duplicates bind to the same position on repeat use).
func toPositional(query string) (string, []string) {
	seen := make(map[string]int)
	var order []string
	rewritten := namedParamRE.ReplaceAllStringFunc(query, func(match string) string {
		name := match[1:]
		idx, ok := seen[name]
		if !ok {
			order = append(order, name)
			idx = len(order)
			seen[name] = idx
		}
		return "$" + strconv.Itoa(idx)
	})
	return rewritten, order
}

// deriveVariables implements spec.md §4.C2's variable-extraction rule.
func deriveVariables(rows []map[string]interface{}) map[string]interface{} {
	vars := make(map[string]interface{})
	if len(rows) == 0 {
		return vars
	}
	if len(rows) == 1 {
		for key := range scalarKeys {
			if v, ok := rows[0][key]; ok {
				vars[key] = v
			}
		}
		return vars
	}
	for _, field := range numericAggregateFields {
		sum, count := 0.0, 0
		for _, row := range rows {
			f, ok := asFloat(row[field])
			if !ok {
				continue
			}
			sum += f
			count++
		}
		if count > 0 {
			vars["sum_"+field] = sum
			vars["count_"+field] = count
		}
	}
	return vars
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
