package variables

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/founder-pl/br-doc-generator/internal/datasource"
)

func newTestRegistry() *datasource.Registry {
	reg := datasource.NewRegistry()
	reg.Register(datasource.Descriptor{
		Name: "nexus_components",
		Kind: datasource.KindSQL,
		Fetch: func(ctx context.Context, params map[string]interface{}) datasource.Result {
			return datasource.Result{
				Source:    "nexus_components",
				Kind:      datasource.KindSQL,
				FetchedAt: time.Now(),
				Payload:   map[string]interface{}{"a": 100.0, "b": 20.0, "c": 5.0, "d": 0.0},
				Variables: map[string]interface{}{"a": 100.0, "b": 20.0, "c": 5.0, "d": 0.0},
			}
		},
	})
	reg.Register(datasource.Descriptor{
		Name: "missing_source",
		Kind: datasource.KindREST,
		Fetch: func(ctx context.Context, params map[string]interface{}) datasource.Result {
			return datasource.ErrResult("missing_source", datasource.KindREST, "", errors.New("unreachable"))
		},
	})
	return reg
}

func TestListVariablesReturnsEveryDescriptor(t *testing.T) {
	resp := ListVariables(newTestRegistry())
	if resp.Total != 2 {
		t.Fatalf("expected 2 descriptors, got %d", resp.Total)
	}
}

func TestGetVariableReturnsNullForFailedFetch(t *testing.T) {
	resp := GetVariable(context.Background(), newTestRegistry(), GetVariableRequest{
		ProjectID: "p1", Source: "missing_source",
	})
	if resp.Value != nil {
		t.Errorf("expected nil value for a failed fetch, got %v", resp.Value)
	}
	if resp.VerificationURL != "/api/project/p1/variable/missing_source" {
		t.Errorf("unexpected verification url %q", resp.VerificationURL)
	}
}

func TestGetVariableResolvesPathFromVariables(t *testing.T) {
	resp := GetVariable(context.Background(), newTestRegistry(), GetVariableRequest{
		ProjectID: "p1", Source: "nexus_components", Path: "a",
	})
	if resp.Value != 100.0 {
		t.Errorf("expected 100.0, got %v", resp.Value)
	}
	if resp.VerificationURL != "/api/project/p1/variable/nexus_components/a" {
		t.Errorf("unexpected verification url %q", resp.VerificationURL)
	}
}

func TestGetNexusComputesRatioAndVerificationURLs(t *testing.T) {
	resp := GetNexus(context.Background(), newTestRegistry(), NexusRequest{
		ProjectID: "p1", Source: "nexus_components",
	})
	want := min(1.0, ((100.0+20.0)*1.3)/(100.0+20.0+5.0+0.0))
	if resp.Nexus != want {
		t.Errorf("expected nexus %v, got %v", want, resp.Nexus)
	}
	if resp.VerificationURL["a"] != "/api/project/p1/variable/nexus_components/a" {
		t.Errorf("unexpected url for component a: %q", resp.VerificationURL["a"])
	}
}

func TestGetNexusDefaultsToOneWhenDenominatorZero(t *testing.T) {
	reg := datasource.NewRegistry()
	reg.Register(datasource.Descriptor{
		Name: "empty",
		Fetch: func(ctx context.Context, params map[string]interface{}) datasource.Result {
			return datasource.Result{Source: "empty", Variables: map[string]interface{}{}}
		},
	})
	resp := GetNexus(context.Background(), reg, NexusRequest{ProjectID: "p1", Source: "empty"})
	if resp.Nexus != 1.0 {
		t.Errorf("expected nexus 1.0 for zero denominator, got %v", resp.Nexus)
	}
}

func lookupFixture(rows map[string]map[string]interface{}) InvoiceLookup {
	return func(ctx context.Context, invoiceID string) (map[string]interface{}, error) {
		return rows[invoiceID], nil
	}
}

func TestGetInvoiceVariableNotFoundError(t *testing.T) {
	lookup := lookupFixture(map[string]map[string]interface{}{})
	_, err := GetInvoiceVariable(context.Background(), lookup, GetInvoiceVariableRequest{InvoiceID: "FV/1", Field: "net"})
	var notFound ErrInvoiceNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
	if !strings.Contains(notFound.Error(), "FV/1") {
		t.Errorf("expected message to mention invoice id, got %q", notFound.Error())
	}
}

func TestGetInvoiceFormatsPlainTextAndOCR(t *testing.T) {
	lookup := lookupFixture(map[string]map[string]interface{}{
		"FV/1": {"vendor_name": "Acme", "ocr_excerpt": "skan faktury"},
	})

	plain, err := GetInvoice(context.Background(), lookup, GetInvoiceRequest{InvoiceID: "FV/1", Format: InvoiceFormatPlainText})
	if err != nil {
		t.Fatal(err)
	}
	text, ok := plain.Content.(string)
	if !ok || !strings.Contains(text, "Acme") {
		t.Errorf("expected plain text to mention vendor, got %v", plain.Content)
	}

	ocr, err := GetInvoice(context.Background(), lookup, GetInvoiceRequest{InvoiceID: "FV/1", Format: InvoiceFormatOCR})
	if err != nil {
		t.Fatal(err)
	}
	if ocr.Content != "skan faktury" {
		t.Errorf("expected ocr excerpt, got %v", ocr.Content)
	}
}
