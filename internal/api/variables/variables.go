// Package variables defines the request/response contract for the
// Variable API (spec.md §6): URL-addressable access to data-source
// registry fetches and the invoice read-model. Handlers here are pure
// functions over the datasource registry; wiring them to net/http routes,
// auth middleware and CORS is out of scope (see internal/collab.AuthChecker).
package variables

import (
	"context"
	"fmt"
	"strings"

	"github.com/founder-pl/br-doc-generator/internal/datasource"
)

// Descriptor is one entry of the ListVariables response, the
// registry-wide catalogue a caller can discover before querying.
type Descriptor struct {
	Name   string                 `json:"name"`
	Kind   datasource.Kind        `json:"kind"`
	Params datasource.ParamSchema `json:"params,omitempty"`
}

// ListVariablesResponse answers GET /api/variables.
type ListVariablesResponse struct {
	Variables []Descriptor `json:"variables"`
	Total     int          `json:"total"`
}

// ListVariables enumerates every registered data source.
func ListVariables(reg *datasource.Registry) ListVariablesResponse {
	var out []Descriptor
	for _, name := range reg.List() {
		d, ok := reg.Get(name)
		if !ok {
			continue
		}
		out = append(out, Descriptor{Name: d.Name, Kind: d.Kind, Params: d.Params})
	}
	return ListVariablesResponse{Variables: out, Total: len(out)}
}

// GetVariableRequest answers GET /api/project/{pid}/variable/{source}
// (optionally with a dotted field path, as a query param or extra path
// segments — both forms resolve identically here).
type GetVariableRequest struct {
	ProjectID string
	Source    string
	Path      string // dotted field path within the fetched payload, may be empty
	Params    map[string]interface{}
}

// GetVariableResponse is the uniform envelope spec.md §6 requires: value,
// source, path and an echoed verification URL. A missing variable is
// represented by Value == nil with no error — "missing variables return
// null with HTTP 200".
type GetVariableResponse struct {
	Value           interface{} `json:"value"`
	Source          string      `json:"source"`
	Path            string      `json:"path,omitempty"`
	VerificationURL string      `json:"verification_url"`
}

// GetVariable resolves req against reg, walking Path into the fetched
// payload/variables when present.
func GetVariable(ctx context.Context, reg *datasource.Registry, req GetVariableRequest) GetVariableResponse {
	verificationURL := buildProjectVerificationURL(req.ProjectID, req.Source, req.Path)

	result := reg.Fetch(ctx, req.Source, req.Params)
	if !result.OK() {
		return GetVariableResponse{Value: nil, Source: req.Source, Path: req.Path, VerificationURL: verificationURL}
	}

	value := resolvePath(result, req.Path)
	return GetVariableResponse{Value: value, Source: req.Source, Path: req.Path, VerificationURL: verificationURL}
}

func resolvePath(result datasource.Result, path string) interface{} {
	if path == "" {
		return result.Payload
	}
	if v, ok := result.Variables[path]; ok {
		return v
	}
	segments := strings.Split(path, ".")
	var cur interface{} = result.Payload
	for _, seg := range segments {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

func buildProjectVerificationURL(projectID, source, path string) string {
	if path == "" {
		return fmt.Sprintf("/api/project/%s/variable/%s", projectID, source)
	}
	return fmt.Sprintf("/api/project/%s/variable/%s/%s", projectID, source, path)
}

// NexusRequest answers GET /api/project/{pid}/nexus.
type NexusRequest struct {
	ProjectID string
	Source    string // data source exposing the four Nexus component scalars
	Params    map[string]interface{}
}

// NexusResponse returns the four Nexus components, the computed ratio,
// and a per-component verification URL.
type NexusResponse struct {
	A, B, C, D      float64            `json:"-"`
	Components      map[string]float64 `json:"components"`
	Nexus           float64            `json:"nexus"`
	VerificationURL map[string]string  `json:"verification_url"`
}

// componentScalars names the four Nexus-component variable keys a Nexus
// data source is expected to expose (spec.md §2 I-NEX, mirrored in
// internal/domain.NexusComponents' field order).
var componentScalars = [4]string{"a", "b", "c", "d"}

// GetNexus fetches req.Source and reduces its a/b/c/d scalars into the
// computed Nexus ratio. Missing components are treated as zero.
func GetNexus(ctx context.Context, reg *datasource.Registry, req NexusRequest) NexusResponse {
	result := reg.Fetch(ctx, req.Source, req.Params)

	values := make(map[string]float64, 4)
	urls := make(map[string]string, 4)
	for _, key := range componentScalars {
		if v, ok := result.Variables[key]; ok {
			values[key] = toFloat(v)
		}
		urls[key] = fmt.Sprintf("/api/project/%s/variable/%s/%s", req.ProjectID, req.Source, key)
	}

	a, b, c, d := values["a"], values["b"], values["c"], values["d"]
	denominator := a + b + c + d
	nexus := 1.0
	if denominator != 0 {
		nexus = clamp01(((a + b) * 1.3) / denominator)
	}

	return NexusResponse{
		A: a, B: b, C: c, D: d,
		Components:      values,
		Nexus:           nexus,
		VerificationURL: urls,
	}
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return 0
	}
}

// InvoiceFormat selects the shape GetInvoice returns.
type InvoiceFormat string

const (
	InvoiceFormatJSON      InvoiceFormat = "json"
	InvoiceFormatPlainText InvoiceFormat = "plain_text"
	InvoiceFormatOCR       InvoiceFormat = "ocr"
)

// GetInvoiceVariableRequest answers GET /api/invoice/{id}/variable/{field}.
type GetInvoiceVariableRequest struct {
	InvoiceID string
	Field     string
}

// ErrInvoiceNotFound is returned (wrapped with the invoice id) when an
// invoice-scoped lookup can't resolve — callers translate this into the
// "404 with a Polish-language detail" spec.md §6 requires.
type ErrInvoiceNotFound struct {
	InvoiceID string
}

func (e ErrInvoiceNotFound) Error() string {
	return fmt.Sprintf("nie znaleziono faktury o identyfikatorze %q", e.InvoiceID)
}

// InvoiceLookup resolves an invoice id to its full read-model row; the
// concrete implementation (database-backed, cache-backed, ...) is
// supplied by the caller — this package only shapes the contract.
type InvoiceLookup func(ctx context.Context, invoiceID string) (map[string]interface{}, error)

// GetInvoiceVariable resolves a single field of one invoice.
func GetInvoiceVariable(ctx context.Context, lookup InvoiceLookup, req GetInvoiceVariableRequest) (GetVariableResponse, error) {
	row, err := lookup(ctx, req.InvoiceID)
	if err != nil {
		return GetVariableResponse{}, err
	}
	if row == nil {
		return GetVariableResponse{}, ErrInvoiceNotFound{InvoiceID: req.InvoiceID}
	}
	value := row[req.Field]
	return GetVariableResponse{
		Value:           value,
		Source:          "invoice",
		Path:            req.Field,
		VerificationURL: fmt.Sprintf("/api/invoice/%s/variable/%s", req.InvoiceID, req.Field),
	}, nil
}

// GetInvoiceRequest answers GET /api/invoice/{id}?format=....
type GetInvoiceRequest struct {
	InvoiceID string
	Format    InvoiceFormat
}

// GetInvoiceResponse carries the full invoice payload in the requested shape.
type GetInvoiceResponse struct {
	InvoiceID string        `json:"invoice_id"`
	Format    InvoiceFormat `json:"format"`
	Content   interface{}   `json:"content"`
}

// GetInvoice resolves the full invoice row and reshapes it per
// req.Format: "json" returns the row verbatim, "plain_text" concatenates
// its string-valued fields, "ocr" surfaces only the OCR excerpt field.
func GetInvoice(ctx context.Context, lookup InvoiceLookup, req GetInvoiceRequest) (GetInvoiceResponse, error) {
	row, err := lookup(ctx, req.InvoiceID)
	if err != nil {
		return GetInvoiceResponse{}, err
	}
	if row == nil {
		return GetInvoiceResponse{}, ErrInvoiceNotFound{InvoiceID: req.InvoiceID}
	}

	format := req.Format
	if format == "" {
		format = InvoiceFormatJSON
	}

	var content interface{}
	switch format {
	case InvoiceFormatPlainText:
		content = flattenPlainText(row)
	case InvoiceFormatOCR:
		content = row["ocr_excerpt"]
	default:
		content = row
	}

	return GetInvoiceResponse{InvoiceID: req.InvoiceID, Format: format, Content: content}, nil
}

func flattenPlainText(row map[string]interface{}) string {
	var b strings.Builder
	for k, v := range row {
		if s, ok := v.(string); ok {
			fmt.Fprintf(&b, "%s: %s\n", k, s)
		}
	}
	return b.String()
}
