// Package datasource implements the data-source registry (spec.md §4.C2):
// a uniform pull abstraction over parameterised SQL queries, REST
// endpoints and cURL subprocesses, feeding generators and exposing every
// produced scalar as a verifiable URL via internal/variable.
package datasource

import (
	"context"
	"time"
)

// Kind is the transport a data source uses.
type Kind string

const (
	KindSQL  Kind = "sql"
	KindREST Kind = "rest"
	KindCurl Kind = "curl"
)

// ParamSchema maps a parameter name to a human-readable description.
type ParamSchema map[string]string

// Fetcher executes a data source given bound parameters. Implementations
// must never panic or return a Go error to the caller — transport and
// parse failures are reported through Result.Error (spec.md §7).
type Fetcher func(ctx context.Context, params map[string]interface{}) Result

// Descriptor is the stateless, process-wide registration record for a
// named data source.
type Descriptor struct {
	Name        string
	Kind        Kind
	Params      ParamSchema
	ResultShape []map[string]string // field name -> type hint, one map per row shape
	Fetch       Fetcher              `json:"-"`
}

// Result is the uniform envelope every fetch returns; Error != "" iff the
// payload is unusable (spec.md §3 DataSourceResult invariant).
type Result struct {
	Payload   interface{}            `json:"payload"`
	Source    string                 `json:"source"`
	Kind      Kind                   `json:"kind"`
	Query     string                 `json:"query"`
	FetchedAt time.Time              `json:"fetched_at"`
	Error     string                 `json:"error,omitempty"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// OK reports whether the result is usable.
func (r Result) OK() bool { return r.Error == "" }

// ErrResult builds an error Result carrying no payload.
func ErrResult(source string, kind Kind, query string, err error) Result {
	return Result{
		Source:    source,
		Kind:      kind,
		Query:     query,
		FetchedAt: time.Now(),
		Error:     err.Error(),
	}
}
