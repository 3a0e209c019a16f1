package webcheck

import (
	"context"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/vertti/uismoke/pkg/browser"
	"github.com/vertti/uismoke/pkg/check"
)

// DefaultAPIKeywords are matched case-insensitively in the API response.
var DefaultAPIKeywords = []string{"rapidxtech", "devops", "demo", "status", "ok"}

// API verifies that the backend path answers with expected content.
type API struct {
	URL      string           // API endpoint (required)
	Keywords []string         // default: DefaultAPIKeywords
	JSONPath string           // optional "path" or "path=value" (gjson syntax)
	Ready    browser.Selector // default: body
	Timeout  time.Duration    // default: 15s
}

func (c *API) Name() string { return "api" }

// Run executes the API reachability check.
func (c *API) Run(ctx context.Context, s browser.Session) check.Result {
	result := check.Result{Name: c.Name()}

	if c.URL == "" {
		return result.Failf("URL is required")
	}
	keywords := listOr(c.Keywords, DefaultAPIKeywords)

	if err := load(ctx, s, c.URL, readyOr(c.Ready), timeoutOr(c.Timeout)); err != nil {
		return result.Failf("could not reach API at %s: %w", c.URL, err)
	}

	body, err := bodyText(ctx, s)
	if err != nil {
		return result.Failf("could not read API response: %w", err)
	}

	lower := strings.ToLower(body)
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	word, ok := containsAny(lower, lowered)
	if !ok {
		return result.Failf("API reached at %s but response content unexpected: %w", c.URL, browser.ErrUnexpectedContent)
	}

	if c.JSONPath != "" {
		path, expectedValue, hasExpectedValue := parseJSONPath(c.JSONPath)
		value := gjson.Get(body, path)
		if !value.Exists() {
			return result.Failf("JSON path %q not found: %w", path, browser.ErrUnexpectedContent)
		}
		if hasExpectedValue && value.String() != expectedValue {
			return result.Failf("JSON path %q: got %q, expected %q: %w", path, value.String(), expectedValue, browser.ErrUnexpectedContent)
		}
	}

	result.Passf("API verified at %s", c.URL)
	result.AddDetailf("matched keyword %q", word)
	return result
}

// parseJSONPath parses "path=value" or "path" format.
func parseJSONPath(jsonPath string) (path, expectedValue string, hasExpectedValue bool) {
	if idx := strings.Index(jsonPath, "="); idx != -1 {
		return jsonPath[:idx], jsonPath[idx+1:], true
	}
	return jsonPath, "", false
}
