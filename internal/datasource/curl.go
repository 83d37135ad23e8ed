package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// CurlSource builds a Fetcher that shells out to curl with argsTemplate,
// substituting "{name}" placeholders from params into each argument.
// ctx's deadline governs the subprocess: exec.CommandContext kills curl
// the moment the context expires, recovered from the hard-kill-on-timeout
// behaviour of the cURL source this registry was distilled from.
func CurlSource(name string, argsTemplate []string) Fetcher {
	return func(ctx context.Context, params map[string]interface{}) Result {
		args := make([]string, len(argsTemplate))
		for i, a := range argsTemplate {
			args[i] = substitutePlaceholders(a, params)
		}

		cmd := exec.CommandContext(ctx, "curl", args...)
		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		query := "curl " + strings.Join(args, " ")
		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return ErrResult(name, KindCurl, query, fmt.Errorf("curl timed out: %w", ctx.Err()))
			}
			return ErrResult(name, KindCurl, query, fmt.Errorf("curl failed: %w: %s", err, stderr.String()))
		}

		var payload interface{}
		raw := stdout.Bytes()
		if err := json.Unmarshal(raw, &payload); err != nil {
			payload = stdout.String()
		}

		return Result{
			Payload: payload,
			Source:  name,
			Kind:    KindCurl,
			Query:   query,
		}
	}
}

func substitutePlaceholders(s string, params map[string]interface{}) string {
	return urlTemplateRE.ReplaceAllStringFunc(s, func(match string) string {
		key := match[1 : len(match)-1]
		if v, ok := params[key]; ok {
			return fmt.Sprint(v)
		}
		return match
	})
}
