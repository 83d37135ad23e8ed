package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var urlTemplateRE = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// RESTSource builds a Fetcher issuing an HTTP request against urlTemplate,
// substituting "{name}" placeholders from params. method is "GET" (params
// not consumed by the template become query-string arguments) or "POST"
// (params are sent as a JSON body).
func RESTSource(client *http.Client, name, method, urlTemplate string) Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, params map[string]interface{}) Result {
		remaining := make(map[string]interface{}, len(params))
		for k, v := range params {
			remaining[k] = v
		}

		resolvedURL := urlTemplateRE.ReplaceAllStringFunc(urlTemplate, func(match string) string {
			key := match[1 : len(match)-1]
			if v, ok := remaining[key]; ok {
				delete(remaining, key)
				return url.PathEscape(fmt.Sprint(v))
			}
			return match
		})

		var req *http.Request
		var err error
		switch strings.ToUpper(method) {
		case "POST":
			body, marshalErr := json.Marshal(remaining)
			if marshalErr != nil {
				return ErrResult(name, KindREST, resolvedURL, marshalErr)
			}
			req, err = http.NewRequestWithContext(ctx, http.MethodPost, resolvedURL, strings.NewReader(string(body)))
			if err == nil {
				req.Header.Set("Content-Type", "application/json")
			}
		default:
			q := url.Values{}
			for k, v := range remaining {
				q.Set(k, fmt.Sprint(v))
			}
			full := resolvedURL
			if len(q) > 0 {
				full += "?" + q.Encode()
			}
			req, err = http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
		}
		if err != nil {
			return ErrResult(name, KindREST, resolvedURL, err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return ErrResult(name, KindREST, resolvedURL, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return ErrResult(name, KindREST, resolvedURL, err)
		}

		if resp.StatusCode >= 400 {
			return ErrResult(name, KindREST, resolvedURL, fmt.Errorf("%s returned HTTP %d", resolvedURL, resp.StatusCode))
		}

		contentType := resp.Header.Get("Content-Type")
		var payload interface{}
		if strings.Contains(contentType, "application/json") {
			if err := json.Unmarshal(raw, &payload); err != nil {
				return ErrResult(name, KindREST, resolvedURL, fmt.Errorf("decoding JSON response: %w", err))
			}
		} else if strings.Contains(contentType, "text/html") {
			rows, err := extractFirstTable(raw)
			if err != nil {
				return ErrResult(name, KindREST, resolvedURL, fmt.Errorf("parsing HTML table fallback: %w", err))
			}
			payload = rows
		} else {
			payload = string(raw)
		}

		return Result{
			Payload: payload,
			Source:  name,
			Kind:    KindREST,
			Query:   resolvedURL,
		}
	}
}

// extractFirstTable is the goquery HTML-table fallback for REST sources
// that answer with a rendered page rather than JSON (spec.md §4.C2).
func extractFirstTable(raw []byte) ([]map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(raw)))
	if err != nil {
		return nil, err
	}

	var headers []string
	table := doc.Find("table").First()
	table.Find("thead th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(s.Text()))
	})

	var rows []map[string]string
	bodyRows := table.Find("tbody tr")
	if bodyRows.Length() == 0 {
		bodyRows = table.Find("tr")
	}
	bodyRows.Each(func(i int, tr *goquery.Selection) {
		row := make(map[string]string)
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			key := strconv.Itoa(j)
			if j < len(headers) && headers[j] != "" {
				key = headers[j]
			}
			row[key] = strings.TrimSpace(td.Text())
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows, nil
}
