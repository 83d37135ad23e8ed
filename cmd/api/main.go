package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/founder-pl/br-doc-generator/internal/api/docgen"
	"github.com/founder-pl/br-doc-generator/internal/api/variables"
	"github.com/founder-pl/br-doc-generator/internal/datasource"
	"github.com/founder-pl/br-doc-generator/internal/generator"
	"github.com/founder-pl/br-doc-generator/internal/llm"
	"github.com/founder-pl/br-doc-generator/internal/prompt"
	"github.com/founder-pl/br-doc-generator/internal/template"
)

var (
	templates *template.Registry
	sources   *datasource.Registry
	chain     *llm.Chain
	gen       *generator.Generator
)

func main() {
	// Load environment variables
	godotenv.Load()

	prompt.RegisterDefaults(prompt.Get())
	fmt.Printf("[PROMPT] Registered %d hardcoded prompts\n", prompt.Get().Count())

	templates = template.NewRegistry()
	templatesPath := "internal/template/testdata"
	if err := template.RegisterDefaults(templates, templatesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load template fixtures from %s: %v\n", templatesPath, err)
	} else {
		fmt.Printf("[TEMPLATE] Registered %d templates\n", templates.Count())
	}

	sources = datasource.NewRegistry()
	pool := connectPool(context.Background())
	datasource.RegisterDefaults(sources, pool)

	chain = buildChain()
	gen = generator.New(templates, sources, chain)

	http.HandleFunc("/api/doc-generator/templates", handleListTemplates)
	http.HandleFunc("/api/doc-generator/generate", handleGenerate)
	http.HandleFunc("/api/doc-generator/render-html", handleRenderHTML)
	http.HandleFunc("/api/project/", handleProjectVariable)
	http.HandleFunc("/api/invoice/", handleInvoiceVariable)

	fmt.Println("Documentation API server starting on :8080...")
	fmt.Println("  - GET  /api/doc-generator/templates")
	fmt.Println("  - POST /api/doc-generator/generate")
	fmt.Println("  - POST /api/doc-generator/render-html")
	fmt.Println("  - GET  /api/project/{id}/variable/{source}[/{path}]")
	fmt.Println("  - GET  /api/project/{id}/nexus/{source}")
	fmt.Println("  - GET  /api/invoice/{id}/variable/{field}")
	fmt.Println("  - GET  /api/invoice/{id}")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

// connectPool dials DATABASE_URL if set. Without it, SQL-backed sources
// are registered against a nil pool and will error at query time; this
// illustrative wiring does not attempt to make that path safe, since a
// real deployment always sets DATABASE_URL.
func connectPool(ctx context.Context) *pgxpool.Pool {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		fmt.Println("[WARNING] DATABASE_URL not set, SQL-backed data sources will fail at fetch time")
		return nil
	}
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		fmt.Printf("[WARNING] failed to connect to DATABASE_URL: %v\n", err)
		return nil
	}
	return pool
}

// buildChain assembles the model fallback chain from MODEL_PROVIDER /
// MODEL_NAME / MODEL_API_KEY / MODEL_BASE_URL. An empty MODEL_PROVIDER
// disables model generation entirely (gen.Chain stays nil), which is a
// supported configuration: the generator's deterministic fallback still
// produces every document.
func buildChain() *llm.Chain {
	providerName := os.Getenv("MODEL_PROVIDER")
	if providerName == "" {
		fmt.Println("[LLM] MODEL_PROVIDER not set, running in deterministic-fallback-only mode")
		return nil
	}
	cfg := llm.ModelConfig{
		Provider:   providerName,
		BaseURL:    os.Getenv("MODEL_BASE_URL"),
		Model:      os.Getenv("MODEL_NAME"),
		APIKey:     os.Getenv("MODEL_API_KEY"),
		MaxRetries: 2,
	}
	fmt.Printf("[LLM] Chain configured: provider=%s model=%s\n", cfg.Provider, cfg.Model)
	return llm.NewChain([]llm.ModelConfig{cfg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, docgen.ListTemplates(templates))
}

func handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req docgen.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	resp, err := docgen.Generate(r.Context(), gen, req)
	if err != nil {
		writeJSON(w, http.StatusOK, resp) // content + in-band Errors, per the docgen contract
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleRenderHTML(w http.ResponseWriter, r *http.Request) {
	var req docgen.RenderHTMLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	resp, err := docgen.RenderHTML(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleProjectVariable is illustrative routing only: it does not parse
// /api/project/{id}/variable/{source}[/{path}] path segments, since the
// path-parsing/auth/CORS middleware layer is out of scope. It always
// answers with GetVariable against the query string for demonstration
// purposes, for the printed /api/project/{id}/nexus/{source} route as
// well; GetNexus is not wired to any route.
func handleProjectVariable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp := variables.GetVariable(r.Context(), sources, variables.GetVariableRequest{
		ProjectID: q.Get("project_id"),
		Source:    q.Get("source"),
		Path:      q.Get("path"),
	})
	writeJSON(w, http.StatusOK, resp)
}

func handleInvoiceVariable(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotImplemented, map[string]string{
		"error": "invoice lookup requires an InvoiceLookup wired to a concrete storage backend, out of scope here",
	})
}
